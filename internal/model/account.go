// Package model defines the data structures used throughout the application.
package model

import "time"

// Profession is the self-declared occupation a user picks at signup.
//
// The UI uses it to choose which vocabulary topics to surface (a Student gets
// education words, a Musician gets music words, and so on). The core only
// stores and returns it — the topic mapping lives in the UI layer.
//
// WHY A NAMED STRING TYPE?
// A plain string would work, but a named type documents intent at every call
// site and gives the valid-set check a natural home (Profession.Valid).
type Profession string

// The recognized professions. Signup rejects anything outside this set —
// including the empty string, which is what an untouched dropdown submits.
const (
	ProfessionStudent      Profession = "Student"
	ProfessionEntrepreneur Profession = "Entrepreneur"
	ProfessionScientist    Profession = "Scientist"
	ProfessionMusician     Profession = "Musician"
	ProfessionWriter       Profession = "Writer"
)

// Professions lists every valid profession, in the order the UI shows them.
var Professions = []Profession{
	ProfessionStudent,
	ProfessionEntrepreneur,
	ProfessionScientist,
	ProfessionMusician,
	ProfessionWriter,
}

// Valid reports whether p is one of the recognized professions.
func (p Profession) Valid() bool {
	for _, known := range Professions {
		if p == known {
			return true
		}
	}
	return false
}

// Account represents a registered user's identity and credential material.
//
// WHY ID int64?
// The accounts table uses INTEGER PRIMARY KEY AUTOINCREMENT, so SQLite hands
// out the surrogate key on insert. int64 matches what sql.Result.LastInsertId
// returns — no conversion dance.
//
// PASSWORD STORAGE:
// PasswordHash is the hex-encoded PBKDF2 output, and Salt is the hex-encoded
// 16-byte random salt it was derived with. The plaintext password never lands
// in this struct and never touches the database. Note the `json:"-"` tags —
// even if an Account is ever serialized to the UI, the credential columns
// stay out of the payload.
type Account struct {
	ID           int64      `json:"id"         db:"id"`
	Username     string     `json:"username"   db:"username"`
	Email        string     `json:"email"      db:"email"`
	PasswordHash string     `json:"-"          db:"password"`
	Salt         string     `json:"-"          db:"salt"`
	Profession   Profession `json:"profession" db:"profession"` // may be empty for legacy rows
	CreatedAt    time.Time  `json:"createdAt"  db:"created_at"`
}
