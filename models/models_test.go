package models

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

// Test RegisterForm validation
func TestRegisterFormValidation(t *testing.T) {
	validForm := RegisterForm{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "pw123",
	}
	if errors := validForm.Validate(); len(errors) != 0 {
		t.Errorf("Expected no errors for valid form, got: %v", errors)
	}

	invalidForm := RegisterForm{
		Name:     "  ",
		Email:    "",
		Password: "",
	}
	if errors := invalidForm.Validate(); len(errors) != 3 {
		t.Errorf("Expected 3 errors for invalid form, got: %v", errors)
	}
}

// Test ClientForm validation
func TestClientFormValidation(t *testing.T) {
	validForm := ClientForm{Name: "Acme Corp", Sector: "Retail"}
	if errors := validForm.Validate(); len(errors) != 0 {
		t.Errorf("Expected no errors for valid form, got: %v", errors)
	}

	invalidForm := ClientForm{Name: "   "}
	if errors := invalidForm.Validate(); len(errors) != 1 {
		t.Errorf("Expected 1 error for blank name, got: %v", errors)
	}
}

// Test SLAForm validation and numeric coercion
func TestSLAFormValidation(t *testing.T) {
	validForm := SLAForm{Name: "Gold", TargetResponseMins: "30"}
	if errors := validForm.Validate(); len(errors) != 0 {
		t.Errorf("Expected no errors for valid form, got: %v", errors)
	}

	invalidForm := SLAForm{Name: ""}
	if errors := invalidForm.Validate(); len(errors) != 1 {
		t.Errorf("Expected 1 error for blank name, got: %v", errors)
	}
}

func TestToInt(t *testing.T) {
	cases := map[string]int{
		"30":    30,
		" 42 ":  42,
		"":      0,
		"abc":   0,
		"12.5":  0,
		"-7":    -7,
	}
	for input, expected := range cases {
		if got := ToInt(input); got != expected {
			t.Errorf("ToInt(%q) = %d, expected %d", input, got, expected)
		}
	}
}

// Test IncidentForm validation: title plus non-zero client and SLA ids
func TestIncidentFormValidation(t *testing.T) {
	validForm := IncidentForm{Title: "Server down", ClientID: "1", SLAID: "2"}
	if errors := validForm.Validate(); len(errors) != 0 {
		t.Errorf("Expected no errors for valid form, got: %v", errors)
	}

	// Zero and unparseable ids both count as missing
	invalidForm := IncidentForm{Title: "", ClientID: "0", SLAID: "abc"}
	if errors := invalidForm.Validate(); len(errors) != 3 {
		t.Errorf("Expected 3 errors for invalid form, got: %v", errors)
	}
}

func TestIncidentFormDefaults(t *testing.T) {
	form := IncidentForm{}
	if got := form.PriorityOrDefault(); got != "Low" {
		t.Errorf("Expected default priority Low, got %s", got)
	}
	if got := form.StatusOrDefault(); got != "Open" {
		t.Errorf("Expected default status Open, got %s", got)
	}

	form = IncidentForm{Priority: " High ", Status: "Closed"}
	if got := form.PriorityOrDefault(); got != "High" {
		t.Errorf("Expected trimmed priority High, got %s", got)
	}
	if got := form.StatusOrDefault(); got != "Closed" {
		t.Errorf("Expected status Closed, got %s", got)
	}
}

func TestRoleIsValid(t *testing.T) {
	if !RoleAdmin.IsValid() || !RoleRegular.IsValid() {
		t.Error("Expected admin and regular to be valid roles")
	}
	if Role("superuser").IsValid() {
		t.Error("Expected unknown role to be invalid")
	}
}

func TestNewUserRejectsUnknownRole(t *testing.T) {
	if _, err := NewUser("X", "x@example.com", Role("root")); err == nil {
		t.Error("Expected error for unknown role")
	}

	user, err := NewUser(" Alice ", " ALICE@Example.com ", RoleRegular)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if user.Name != "Alice" {
		t.Errorf("Expected trimmed name, got %q", user.Name)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("Expected normalized email, got %q", user.Email)
	}
}

func TestPasswordHashing(t *testing.T) {
	user := &User{}
	if err := user.SetPassword("pw123", bcrypt.MinCost); err != nil {
		t.Fatalf("Failed to set password: %v", err)
	}
	if user.PasswordHash == "pw123" {
		t.Error("Expected password to be hashed, not stored in plaintext")
	}
	if !user.CheckPassword("pw123") {
		t.Error("Expected correct password to verify")
	}
	if user.CheckPassword("wrong") {
		t.Error("Expected wrong password to fail verification")
	}
}

// Test the authorization predicate
func TestAuthorize(t *testing.T) {
	admin := &User{ID: 1, Role: RoleAdmin}
	owner := &User{ID: 2, Role: RoleRegular}
	other := &User{ID: 3, Role: RoleRegular}

	if !Authorize(admin, RuleAdminOnly, 0) {
		t.Error("Expected admin to pass RuleAdminOnly")
	}
	if Authorize(owner, RuleAdminOnly, owner.ID) {
		t.Error("Expected regular user to fail RuleAdminOnly even as owner")
	}

	if !Authorize(admin, RuleAdminOrOwner, other.ID) {
		t.Error("Expected admin to pass RuleAdminOrOwner for any owner")
	}
	if !Authorize(owner, RuleAdminOrOwner, owner.ID) {
		t.Error("Expected owner to pass RuleAdminOrOwner")
	}
	if Authorize(other, RuleAdminOrOwner, owner.ID) {
		t.Error("Expected non-owner regular user to fail RuleAdminOrOwner")
	}
	if Authorize(nil, RuleAdminOrOwner, 0) {
		t.Error("Expected nil user to fail authorization")
	}
}
