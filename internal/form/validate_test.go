// internal/form/validate_test.go
//
// Unit-tests for the semantic field validators.
//
// Run: go test ./internal/form -v

package form

import "testing"

func TestValidateName(t *testing.T) {
	cases := []struct {
		in   string
		ok   bool
		msg  string
		note string
	}{
		{"María Pérez", true, "", "diacritics allowed"},
		{"Ana", true, "", "plain letters"},
		{"", false, MsgNameRequired, "empty"},
		{"   ", false, MsgNameRequired, "whitespace only"},
		{"Ana123", false, MsgNameInvalid, "digits rejected"},
		{"Ana-María", false, MsgNameInvalid, "hyphen rejected"},
	}
	for _, c := range cases {
		v := ValidateName(c.in)
		if v.OK != c.ok || v.Message != c.msg {
			t.Errorf("%s: ValidateName(%q) = (%v, %q), want (%v, %q)",
				c.note, c.in, v.OK, v.Message, c.ok, c.msg)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	cases := []struct {
		in  string
		ok  bool
		msg string
	}{
		{"ana@petshop.co", true, ""},
		{"luis.gomez@mail.example.com", true, ""},
		{"", false, MsgEmailRequired},
		{"ana@petshop", false, MsgEmailInvalid},
		{"ana petshop@x.co", false, MsgEmailInvalid},
		{"@petshop.co", false, MsgEmailInvalid},
	}
	for _, c := range cases {
		v := ValidateEmail(c.in)
		if v.OK != c.ok || v.Message != c.msg {
			t.Errorf("ValidateEmail(%q) = (%v, %q), want (%v, %q)",
				c.in, v.OK, v.Message, c.ok, c.msg)
		}
	}
}

func TestValidateDocument(t *testing.T) {
	cases := []struct {
		in  string
		ok  bool
		msg string
	}{
		{"1234567", true, ""},  // 7 digits, lower bound
		{"1234567890", true, ""}, // 10 digits, upper bound
		{"", false, MsgDocumentRequired},
		{"123456", false, MsgDocumentInvalid},      // 6 digits
		{"12345678901", false, MsgDocumentInvalid}, // 11 digits
		{"12345a7", false, MsgDocumentInvalid},
	}
	for _, c := range cases {
		v := ValidateDocument(c.in)
		if v.OK != c.ok || v.Message != c.msg {
			t.Errorf("ValidateDocument(%q) = (%v, %q), want (%v, %q)",
				c.in, v.OK, v.Message, c.ok, c.msg)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		in  string
		ok  bool
		msg string
	}{
		{"Abcdef1!", true, ""},
		{"P@ssw0rd", true, ""},
		{"", false, MsgPasswordRequired},
		{"abcdefgh", false, MsgPasswordWeak}, // no upper, digit, special
		{"ABCDEFG1!", false, MsgPasswordWeak}, // no lowercase
		{"Abcdefg!", false, MsgPasswordWeak},  // no digit
		{"Abcdefg1", false, MsgPasswordWeak},  // no special
		{"Abc1!", false, MsgPasswordWeak},     // too short
	}
	for _, c := range cases {
		v := ValidatePassword(c.in)
		if v.OK != c.ok || v.Message != c.msg {
			t.Errorf("ValidatePassword(%q) = (%v, %q), want (%v, %q)",
				c.in, v.OK, v.Message, c.ok, c.msg)
		}
	}
}

func TestValidatePasswordConfirm(t *testing.T) {
	if v := ValidatePasswordConfirm("P@ssw0rd", "P@ssw0rd"); !v.OK {
		t.Fatalf("matching confirmation failed: %q", v.Message)
	}
	if v := ValidatePasswordConfirm("P@ssw0rd", "P@ssw0rd2"); v.OK || v.Message != MsgConfirmMismatch {
		t.Fatalf("mismatch = (%v, %q), want mismatch message", v.OK, v.Message)
	}
	if v := ValidatePasswordConfirm("", "P@ssw0rd"); v.OK || v.Message != MsgConfirmRequired {
		t.Fatalf("empty confirmation = (%v, %q), want required message", v.OK, v.Message)
	}
}

func TestValidateNIT(t *testing.T) {
	cases := []struct {
		in  string
		ok  bool
		msg string
	}{
		{"900123456", true, ""},
		{"9001234567", true, ""},
		{"900123456-7", true, ""}, // check digit
		{"", false, MsgNITRequired},
		{"90012345", false, MsgNITInvalid},   // 8 digits
		{"900123456-", false, MsgNITInvalid}, // dangling dash
		{"900123456-77", false, MsgNITInvalid},
	}
	for _, c := range cases {
		v := ValidateNIT(c.in)
		if v.OK != c.ok || v.Message != c.msg {
			t.Errorf("ValidateNIT(%q) = (%v, %q), want (%v, %q)",
				c.in, v.OK, v.Message, c.ok, c.msg)
		}
	}
}

func TestValidatePhone(t *testing.T) {
	cases := []struct {
		in  string
		ok  bool
		msg string
	}{
		{"3001234567", true, ""},
		{"+573001234", true, ""},
		{"1234567", true, ""},
		{"", false, MsgPhoneRequired},
		{"123456", false, MsgPhoneInvalid},       // 6 digits
		{"30012345678", false, MsgPhoneInvalid},  // 11 digits
		{"300-123-4567", false, MsgPhoneInvalid}, // separators
	}
	for _, c := range cases {
		v := ValidatePhone(c.in)
		if v.OK != c.ok || v.Message != c.msg {
			t.Errorf("ValidatePhone(%q) = (%v, %q), want (%v, %q)",
				c.in, v.OK, v.Message, c.ok, c.msg)
		}
	}
}

func TestValidateAddress(t *testing.T) {
	if v := ValidateAddress("Cra 45 # 12-34"); !v.OK {
		t.Fatalf("valid address failed: %q", v.Message)
	}
	if v := ValidateAddress("  ab  "); v.OK || v.Message != MsgAddressInvalid {
		t.Fatalf("short address = (%v, %q), want invalid", v.OK, v.Message)
	}
	if v := ValidateAddress(""); v.OK || v.Message != MsgAddressRequired {
		t.Fatalf("empty address = (%v, %q), want required", v.OK, v.Message)
	}
}

func TestValidateFieldOptionalEmptyPasses(t *testing.T) {
	f := &FieldDef{Name: "payment_notes", Label: "Notes", Kind: KindTextarea}
	clean, v := ValidateField(f, "   ", "")
	if !v.OK || clean != "" {
		t.Fatalf("optional empty = (%q, %v, %q), want pass with empty clean",
			clean, v.OK, v.Message)
	}
}

func TestValidateFieldTrimsExceptPasswords(t *testing.T) {
	name := &FieldDef{Name: "name", Label: "Name", Kind: KindName, Required: true}
	clean, v := ValidateField(name, "  Ana  ", "")
	if !v.OK || clean != "Ana" {
		t.Fatalf("name clean = %q (ok=%v), want trimmed 'Ana'", clean, v.OK)
	}

	pw := &FieldDef{Name: "password", Label: "Password", Kind: KindPassword, Required: true}
	clean, v = ValidateField(pw, " P@ssw0rd ", "")
	if !v.OK || clean != " P@ssw0rd " {
		t.Fatalf("password clean = %q (ok=%v), want untrimmed original", clean, v.OK)
	}
}

func TestValidateFieldSecretPresenceOnly(t *testing.T) {
	f := &FieldDef{Name: "password", Label: "Password", Kind: KindSecret, Required: true}
	if _, v := ValidateField(f, "weak", ""); !v.OK {
		t.Fatalf("secret rejected a present value: %q", v.Message)
	}
	if _, v := ValidateField(f, "", ""); v.OK || v.Message != MsgPasswordRequired {
		t.Fatalf("empty secret = (%v, %q), want required message", v.OK, v.Message)
	}
}

func TestValidateFieldGenericKinds(t *testing.T) {
	date := &FieldDef{Name: "payment_date", Label: "Payment date", Kind: KindDate, Required: true}
	if _, v := ValidateField(date, "2026-02-31", ""); v.OK {
		t.Fatal("impossible date passed")
	}
	if _, v := ValidateField(date, "2026-09-01", ""); !v.OK {
		t.Fatalf("valid date failed: %q", v.Message)
	}

	qty := &FieldDef{Name: "quantity", Label: "Quantity", Kind: KindNumber, Required: true}
	if _, v := ValidateField(qty, "-3", ""); v.OK {
		t.Fatal("negative number passed")
	}
	if _, v := ValidateField(qty, "12", ""); !v.OK {
		t.Fatalf("valid number failed: %q", v.Message)
	}

	sel := &FieldDef{
		Name: "id_type", Label: "ID type", Kind: KindSelect, Required: true,
		Options: []string{"CC", "CE"},
	}
	if _, v := ValidateField(sel, "TI", ""); v.OK {
		t.Fatal("unknown option passed")
	}
	if _, v := ValidateField(sel, "CC", ""); !v.OK {
		t.Fatalf("listed option failed: %q", v.Message)
	}
}
