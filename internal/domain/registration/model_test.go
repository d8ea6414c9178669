package registration

import "testing"

func str(s string) *string { return &s }

// TestValidate covers the required-field rules.
func TestValidate(t *testing.T) {
	valid := Registration{StudentID: "6512345678", Name: "สมชาย ใจดี", Email: "somchai@example.com"}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid registration rejected: %v", err)
	}

	noID := valid
	noID.StudentID = "  "
	if err := noID.Validate(); err == nil {
		t.Error("empty student id accepted")
	}

	noName := valid
	noName.Name = ""
	if err := noName.Validate(); err == nil {
		t.Error("empty name accepted")
	}

	badEmail := valid
	badEmail.Email = "not-an-email"
	if err := badEmail.Validate(); err == nil {
		t.Error("email without @ accepted")
	}
}

// TestPartial_IsEmpty verifies the no-change detection.
func TestPartial_IsEmpty(t *testing.T) {
	if !(Partial{}).IsEmpty() {
		t.Error("zero partial should be empty")
	}
	if (Partial{Faculty: str("SC")}).IsEmpty() {
		t.Error("partial with a set field should not be empty")
	}
}

// TestPartial_Apply verifies set fields overwrite and unset fields are kept.
func TestPartial_Apply(t *testing.T) {
	reg := Registration{
		StudentID:  "6512345678",
		Name:       "สมชาย ใจดี",
		Faculty:    "SC : คณะวิทยาศาสตร์",
		DietaryReq: "mild",
		Email:      "somchai@example.com",
		Group:      4,
	}

	p := Partial{
		DietaryReq:  str("vegetarian"),
		FoodAllergy: str("peanuts"),
	}
	p.Apply(&reg)

	if reg.DietaryReq != "vegetarian" {
		t.Errorf("DietaryReq = %q, want vegetarian", reg.DietaryReq)
	}
	if reg.FoodAllergy != "peanuts" {
		t.Errorf("FoodAllergy = %q, want peanuts", reg.FoodAllergy)
	}
	// Unset fields untouched
	if reg.Name != "สมชาย ใจดี" || reg.Faculty != "SC : คณะวิทยาศาสตร์" || reg.Group != 4 {
		t.Errorf("unset fields changed: %+v", reg)
	}
}

// TestPartial_Apply_EmptyStringIsAWrite verifies a set empty string clears the field.
func TestPartial_Apply_EmptyStringIsAWrite(t *testing.T) {
	reg := Registration{DietaryReq: "vegetarian"}
	p := Partial{DietaryReq: str("")}
	p.Apply(&reg)
	if reg.DietaryReq != "" {
		t.Errorf("DietaryReq = %q, want cleared", reg.DietaryReq)
	}
}

// TestNormalizeEmailKey verifies trimming and lowercasing.
func TestNormalizeEmailKey(t *testing.T) {
	cases := map[string]string{
		"  Somchai@Example.COM ": "somchai@example.com",
		"a@b.c":                  "a@b.c",
		"":                       "",
	}
	for in, want := range cases {
		if got := NormalizeEmailKey(in); got != want {
			t.Errorf("NormalizeEmailKey(%q) = %q, want %q", in, got, want)
		}
	}
}
