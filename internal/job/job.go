// Package job provides the job listing record, the in-memory collection that
// owns the records during a session, and the adapter that persists the whole
// collection as a single JSON document in a key-value string store.
package job

import "strings"

// Category is the job category of a listing.
type Category string

const (
	// CategorySalesMarketing is the default category for new listings.
	CategorySalesMarketing Category = "Sales/Marketing"
	// CategoryIT covers software and infrastructure roles.
	CategoryIT Category = "IT"
	// CategoryDesign covers design roles.
	CategoryDesign Category = "Design"
	// CategoryOthers covers everything else.
	CategoryOthers Category = "Others"
)

// Categories lists every category in display order.
var Categories = []Category{CategorySalesMarketing, CategoryIT, CategoryDesign, CategoryOthers}

// Employment is the employment type of a listing.
type Employment string

const (
	EmploymentFullTime   Employment = "Full-time"
	EmploymentPartTime   Employment = "Part-time"
	EmploymentContract   Employment = "Contract"
	EmploymentFreelance  Employment = "Freelance"
	EmploymentInternship Employment = "Internship"
)

// Employments lists every employment type in display order.
var Employments = []Employment{
	EmploymentFullTime,
	EmploymentPartTime,
	EmploymentContract,
	EmploymentFreelance,
	EmploymentInternship,
}

// Skill is the primary skill tag of a listing.
type Skill string

const (
	SkillCPP        Skill = "C++"
	SkillJavaScript Skill = "JavaScript"
	SkillBackend    Skill = "Backend"
	SkillPython     Skill = "Python"
)

// Skills lists every skill tag in display order.
var Skills = []Skill{SkillCPP, SkillJavaScript, SkillBackend, SkillPython}

// DateLayout is the calendar date layout used for the posted date.
const DateLayout = "2006-01-02"

// Record is one job listing.
// JSON keys match the persisted document layout, including the capitalised
// Company and Skills keys, so stored collections stay readable across versions.
type Record struct {
	// ID is unique within a collection.
	ID int64 `json:"id"`
	// Title is required for records admitted through the form.
	Title string `json:"title"`
	// Company is required for records admitted through the form.
	Company string `json:"Company"`
	// Logo is an optional image URL.
	Logo string `json:"logo"`
	// Posted is the posted date in YYYY-MM-DD form.
	Posted string `json:"posted"`
	// Category is the job category.
	Category Category `json:"jobType"`
	// Employment is the employment type.
	Employment Employment `json:"employment"`
	// Skill is the primary skill tag.
	Skill Skill `json:"Skills"`
	// Location is free text, e.g. "Kathmandu, Nepal" or "Remote".
	Location string `json:"location"`
	// Salary is free text without a unit.
	Salary string `json:"salary"`
}

// HasRequiredFields reports whether title and company are both non-empty.
// Records injected directly into storage may fail this check.
func (r Record) HasRequiredFields() bool {
	return r.Title != "" && r.Company != ""
}

// Summary returns the "category • employment • skill • salary" line shown on a card.
func (r Record) Summary() string {
	parts := []string{string(r.Category), string(r.Employment), string(r.Skill), r.Salary}
	return strings.Join(parts, " • ")
}

// Seed returns the fixed two-record collection used on first run,
// when the stored document is missing or corrupt, and after a reset.
// Each call returns a fresh slice.
func Seed() []Record {
	return []Record{
		{
			ID:         1,
			Title:      "Frontend Intern",
			Company:    "Acme Co",
			Logo:       "",
			Posted:     "2025-09-15",
			Category:   CategorySalesMarketing,
			Employment: EmploymentInternship,
			Skill:      SkillCPP,
			Location:   "Kathmandu, Nepal",
			Salary:     "Negotiable",
		},
		{
			ID:         2,
			Title:      "Marketing Associate",
			Company:    "BrightAds",
			Logo:       "",
			Posted:     "2025-09-10",
			Category:   CategoryIT,
			Employment: EmploymentFullTime,
			Skill:      SkillJavaScript,
			Location:   "Remote",
			Salary:     "$300/month",
		},
	}
}

// cloneRecords copies a slice of records. Record has no reference fields,
// so a shallow copy is a deep copy.
func cloneRecords(records []Record) []Record {
	out := make([]Record, len(records))
	copy(out, records)
	return out
}
