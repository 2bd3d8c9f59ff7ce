package domain

import (
	"encoding/json"
	"time"
)

// Role represents a user role in the system
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

// TuitionFee is the fixed tuition amount for every enrolled student (FCFA).
const TuitionFee = 70000

// User represents an account in the user directory.
// Passwords are stored verbatim in the users file: they are install-time
// defaults meant to be rotated, not secrets managed by this system.
type User struct {
	Username string `json:"username" yaml:"-"`
	Password string `json:"-" yaml:"password"`
	Role     Role   `json:"role" yaml:"role"`
}

// Identity is the authenticated caller of a domain operation.
// It is built from the session by the HTTP layer and passed explicitly
// into every service call.
type Identity struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// IsZero reports whether no authenticated identity is present.
func (i Identity) IsZero() bool {
	return i.Username == ""
}

// IsAdmin reports whether the identity carries the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// Student represents one enrollment record in the ledger.
//
// Beyond the fixed columns, callers may attach arbitrary enrollment fields
// (classe, contact, date de naissance, ...). Those travel in Extra and are
// flattened into the YAML document and the JSON wire form so the record
// round-trips without loss.
type Student struct {
	ID              int64  `yaml:"id"`
	Nom             string `yaml:"nom"`
	Prenoms         string `yaml:"prenoms"`
	DateInscription string `yaml:"date_inscription"`
	FraisScolarite  int    `yaml:"frais_scolarite"`
	MontantPaye     int    `yaml:"montant_paye"`
	ResteAPayer     int    `yaml:"reste_a_payer"`

	Extra map[string]any `yaml:",inline"`
}

// NewStudent builds a student from caller-supplied fields. The id, the
// inscription date and the three tuition fields are always assigned here,
// overriding whatever the caller sent for those keys.
func NewStudent(fields map[string]any, now time.Time) Student {
	s := Student{
		ID:              now.UnixMilli(),
		DateInscription: now.Format(time.RFC3339),
		FraisScolarite:  TuitionFee,
		MontantPaye:     0,
		ResteAPayer:     TuitionFee,
	}
	for key, value := range fields {
		switch key {
		case "id", "date_inscription", "frais_scolarite", "montant_paye", "reste_a_payer":
			// server-assigned, caller values ignored
		case "nom":
			s.Nom, _ = value.(string)
		case "prenoms":
			s.Prenoms, _ = value.(string)
		default:
			if s.Extra == nil {
				s.Extra = make(map[string]any)
			}
			s.Extra[key] = value
		}
	}
	return s
}

// ApplyPayment adds amount to the cumulative paid total and recomputes the
// remaining balance from the tuition fee. Amounts are taken as-is: negative
// amounts and over-payments are accepted, leaving a negative balance.
func (s *Student) ApplyPayment(amount int) {
	s.MontantPaye += amount
	s.ResteAPayer = s.FraisScolarite - s.MontantPaye
}

// MarshalJSON flattens the extra enrollment fields next to the fixed ones.
func (s Student) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(s.Extra)+7)
	for k, v := range s.Extra {
		m[k] = v
	}
	m["id"] = s.ID
	m["nom"] = s.Nom
	m["prenoms"] = s.Prenoms
	m["date_inscription"] = s.DateInscription
	m["frais_scolarite"] = s.FraisScolarite
	m["montant_paye"] = s.MontantPaye
	m["reste_a_payer"] = s.ResteAPayer
	return json.Marshal(m)
}

// UnmarshalJSON is the inverse of MarshalJSON: known keys are lifted into
// the fixed columns, everything else lands in Extra.
func (s *Student) UnmarshalJSON(data []byte) error {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*s = Student{}
	for key, value := range m {
		switch key {
		case "id":
			s.ID = toInt64(value)
		case "nom":
			s.Nom, _ = value.(string)
		case "prenoms":
			s.Prenoms, _ = value.(string)
		case "date_inscription":
			s.DateInscription, _ = value.(string)
		case "frais_scolarite":
			s.FraisScolarite = int(toInt64(value))
		case "montant_paye":
			s.MontantPaye = int(toInt64(value))
		case "reste_a_payer":
			s.ResteAPayer = int(toInt64(value))
		default:
			if s.Extra == nil {
				s.Extra = make(map[string]any)
			}
			s.Extra[key] = value
		}
	}
	return nil
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	case json.Number:
		i, _ := n.Int64()
		return i
	}
	return 0
}

// Stats aggregates the tuition position of the whole ledger.
type Stats struct {
	TotalStudents  int `json:"total_students"`
	TotalExpected  int `json:"total_expected"`
	TotalCollected int `json:"total_collected"`
	TotalRemaining int `json:"total_remaining"`
}
