package models

// Sectors is the recognized list of industry sectors surfaced by the
// industries listing. Sector values on users and orders stay free-text so
// accounts registered under older spellings keep working.
var Sectors = []string{
	"food",
	"textile",
	"chemical",
	"construction",
	"electronics",
	"packaging",
	"machinery",
}
