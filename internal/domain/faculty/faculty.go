// Package faculty owns the single versioned faculty code table.
// Earlier page variants each carried their own copy of this table with
// drifting entries; every consumer now looks codes up here instead.
package faculty

import "strings"

// Separator joins a faculty code and its Thai label in the stored
// composite value, e.g. "SC : คณะวิทยาศาสตร์".
const Separator = " : "

// labels maps each Mahidol faculty code to its Thai label.
// INVARIANT: codes are stable identifiers; labels may be revised between events.
var labels = map[string]string{
	"AM":    "โครงการจัดตั้งวิทยาเขตอำนาจเจริญ",
	"CRS":   "วิทยาลัยศาสนศึกษา",
	"DT":    "คณะทันตแพทยศาสตร์",
	"EG":    "คณะวิศวกรรมศาสตร์",
	"EN":    "คณะสิ่งแวดล้อมและทรัพยากรศาสตร์",
	"IC":    "วิทยาลัยนานาชาติ",
	"ICT":   "คณะเทคโนโลยีสารสนเทศและการสื่อสาร",
	"KA":    "วิทยาเขตกาญจนบุรี",
	"LA":    "คณะศิลปศาสตร์",
	"MS":    "วิทยาลัยดุริยางคศิลป์",
	"MT":    "คณะเทคนิคการแพทย์",
	"NS":    "คณะพยาบาลศาสตร์",
	"NW":    "โครงการจัดตั้งวิทยาเขตนครสวรรค์",
	"PH":    "คณะสาธารณสุขศาสตร์",
	"PT":    "คณะกายภาพบำบัด",
	"PY":    "คณะเภสัชศาสตร์",
	"RA":    "คณะแพทยศาสตร์โรงพยาบาลรามาธิบดี",
	"SC":    "คณะวิทยาศาสตร์",
	"SH":    "คณะสังคมศาสตร์และมนุษยศาสตร์",
	"SI":    "คณะแพทยศาสตร์ศิริราชพยาบาล",
	"SS":    "วิทยาลัยวิทยาศาสตร์และเทคโนโลยีการกีฬา",
	"VS":    "คณะสัตวแพทยศาสตร์",
	"PI":    "คณะแพทยศาสตร์ สถาบันพระบรมราชชนก",
	"Other": "Other",
}

// order lists codes in the sequence the edit form presents them.
var order = []string{
	"AM", "CRS", "DT", "EG", "EN", "IC", "ICT", "KA", "LA", "MS", "MT", "NS",
	"NW", "PH", "PT", "PY", "RA", "SC", "SH", "SI", "SS", "VS", "PI", "Other",
}

// Option is one entry of the faculty select.
type Option struct {
	Code  string
	Label string
}

// Options returns the faculty choices in display order.
// POST: returned slice is a fresh copy; callers may not mutate the table through it
func Options() []Option {
	opts := make([]Option, 0, len(order))
	for _, code := range order {
		opts = append(opts, Option{Code: code, Label: labels[code]})
	}
	return opts
}

// Label returns the label for a code and whether the code is known.
func Label(code string) (string, bool) {
	label, ok := labels[code]
	return label, ok
}

// Compose builds the stored composite value for a code.
// Unknown codes come back bare, without the separator, so the raw code is
// still preserved.
// POST: returns "" for an empty code
func Compose(code string) string {
	if code == "" {
		return ""
	}
	label, ok := labels[code]
	if !ok {
		return code
	}
	return code + Separator + label
}

// Code extracts the code portion of a stored composite value.
// The display value of the faculty select is derived this way.
// POST: returns the input unchanged when no separator is present
func Code(composite string) string {
	code, _, _ := strings.Cut(composite, Separator)
	return code
}
