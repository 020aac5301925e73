package enums

import "testing"

func TestParseEnums(t *testing.T) {
	if v, err := ParseClassType("Live Session"); err != nil || v != ClassTypeLiveSession {
		t.Fatalf("unexpected class type %q err %v", v, err)
	}
	if _, err := ParseClassType("live session"); err == nil {
		t.Fatal("expected case-sensitive class type match")
	}
	if v, err := ParseSessionStatus("live"); err != nil || v != SessionStatusLive {
		t.Fatalf("unexpected session status %q err %v", v, err)
	}
	if _, err := ParsePaymentStatus("unknown"); err == nil {
		t.Fatal("expected payment status error")
	}
	if !BookingStatusPending.IsValid() || BookingStatus("Done").IsValid() {
		t.Fatal("unexpected booking status validity")
	}
	if !ContentFormatAudio.IsValid() || Gender("x").IsValid() {
		t.Fatal("unexpected user enum validity")
	}
	if v, err := ParseTransactionStatus("cancelled"); err != nil || v != TransactionStatusCancelled {
		t.Fatalf("unexpected transaction status %q err %v", v, err)
	}
	if v, err := ParseStreamVisibility("unlisted"); err != nil || v != StreamVisibilityUnlisted {
		t.Fatalf("unexpected visibility %q err %v", v, err)
	}
	if v, err := ParseCallStatus("Reject"); err != nil || v != CallStatusReject {
		t.Fatalf("unexpected call status %q err %v", v, err)
	}
	if v, err := ParseClassAccess("Premium"); err != nil || v != ClassAccessPremium {
		t.Fatalf("unexpected access %q err %v", v, err)
	}
	if v, err := ParseGender("female"); err != nil || v != GenderFemale {
		t.Fatalf("unexpected gender %q err %v", v, err)
	}
	if v, err := ParseContentFormat("Text"); err != nil || v != ContentFormatText {
		t.Fatalf("unexpected format %q err %v", v, err)
	}
}
