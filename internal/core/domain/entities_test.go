package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNewStudentAssignsServerFields(t *testing.T) {
	now := time.Now()
	fields := map[string]any{
		"nom":             "Koffi",
		"prenoms":         "Jean",
		"classe":          "CM2",
		"contact":         "0102030405",
		"id":              999,
		"frais_scolarite": 1,
		"montant_paye":    50000,
		"reste_a_payer":   0,
	}

	s := NewStudent(fields, now)

	if s.ID != now.UnixMilli() {
		t.Fatalf("id: got %d, want %d", s.ID, now.UnixMilli())
	}
	if s.FraisScolarite != TuitionFee {
		t.Fatalf("frais_scolarite: got %d, want %d", s.FraisScolarite, TuitionFee)
	}
	if s.MontantPaye != 0 || s.ResteAPayer != TuitionFee {
		t.Fatalf("tuition fields not reset: paye=%d reste=%d", s.MontantPaye, s.ResteAPayer)
	}
	if s.Nom != "Koffi" || s.Prenoms != "Jean" {
		t.Fatalf("names not lifted: %q %q", s.Nom, s.Prenoms)
	}
	if s.Extra["classe"] != "CM2" || s.Extra["contact"] != "0102030405" {
		t.Fatalf("extra fields lost: %+v", s.Extra)
	}
	if _, err := time.Parse(time.RFC3339, s.DateInscription); err != nil {
		t.Fatalf("date_inscription not ISO-8601: %q", s.DateInscription)
	}
}

func TestApplyPaymentRecomputesBalance(t *testing.T) {
	s := NewStudent(map[string]any{"nom": "Koffi", "prenoms": "Jean"}, time.Now())

	s.ApplyPayment(30000)
	if s.MontantPaye != 30000 || s.ResteAPayer != 40000 {
		t.Fatalf("after first payment: paye=%d reste=%d", s.MontantPaye, s.ResteAPayer)
	}

	// Over-payment is recorded as given, the balance goes negative.
	s.ApplyPayment(50000)
	if s.MontantPaye != 80000 || s.ResteAPayer != -10000 {
		t.Fatalf("after second payment: paye=%d reste=%d", s.MontantPaye, s.ResteAPayer)
	}

	if s.MontantPaye+s.ResteAPayer != s.FraisScolarite {
		t.Fatalf("balance invariant broken: %d + %d != %d", s.MontantPaye, s.ResteAPayer, s.FraisScolarite)
	}
}

func TestStudentJSONFlattensExtraFields(t *testing.T) {
	s := Student{
		ID:              1700000000000,
		Nom:             "Kouassi",
		Prenoms:         "Awa",
		DateInscription: "2026-08-28T10:00:00Z",
		FraisScolarite:  TuitionFee,
		MontantPaye:     10000,
		ResteAPayer:     60000,
		Extra:           map[string]any{"classe": "CE1"},
	}

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var flat map[string]any
	if err := json.Unmarshal(data, &flat); err != nil {
		t.Fatalf("unmarshal flat: %v", err)
	}
	if flat["classe"] != "CE1" {
		t.Fatalf("extra field not flattened: %+v", flat)
	}
	if flat["nom"] != "Kouassi" || flat["montant_paye"] != float64(10000) {
		t.Fatalf("fixed fields missing: %+v", flat)
	}
	if _, nested := flat["Extra"]; nested {
		t.Fatal("Extra map leaked as a nested object")
	}

	var back Student
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal student: %v", err)
	}
	if back.ID != s.ID || back.ResteAPayer != s.ResteAPayer {
		t.Fatalf("roundtrip mismatch: %+v", back)
	}
	if back.Extra["classe"] != "CE1" {
		t.Fatalf("extra field lost on roundtrip: %+v", back.Extra)
	}
}
