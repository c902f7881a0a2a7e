package domain

import "fmt"

// Canonical column names assigned positionally to the admission sheet.
const (
	ColSerialNumber                 = "S.No"
	ColDistrict                     = "District"
	ColInstitutionName              = "InstitutionName"
	ColVMinoritiesSanctioned        = "V_Minorities_Sanctioned"
	ColVMinoritiesAdmitted          = "V_Minorities_Admitted"
	ColVNonMinoritiesSanctioned     = "V_NonMinorities_Sanctioned"
	ColVNonMinoritiesAdmitted       = "V_NonMinorities_Admitted"
	ColCourse                       = "Course"
	ColInterMinoritiesSanctioned    = "Inter_Minorities_Sanctioned"
	ColInterMinoritiesAdmitted      = "Inter_Minorities_Admitted"
	ColInterNonMinoritiesSanctioned = "Inter_NonMinorities_Sanctioned"
	ColInterNonMinoritiesAdmitted   = "Inter_NonMinorities_Admitted"
)

// RawColumns lists the canonical names in sheet order. A RawRow has exactly
// one cell per entry.
var RawColumns = []string{
	ColSerialNumber,
	ColDistrict,
	ColInstitutionName,
	ColVMinoritiesSanctioned,
	ColVMinoritiesAdmitted,
	ColVNonMinoritiesSanctioned,
	ColVNonMinoritiesAdmitted,
	ColCourse,
	ColInterMinoritiesSanctioned,
	ColInterMinoritiesAdmitted,
	ColInterNonMinoritiesSanctioned,
	ColInterNonMinoritiesAdmitted,
}

// CSVHeader is the header line of the normalized extract.
var CSVHeader = []string{"S.No", "District", "Institution Name", "Class", "Sanctioned", "Admitted", "Vacancies"}

// Table is the canonical wide table produced by the loader
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// ColumnIndex returns the position of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// ClassLevel identifies one of the two admission cohorts
type ClassLevel int

const (
	ClassLevelV ClassLevel = iota
	ClassLevelInterFirstYear
)

// String returns the label used in the CSV extract
func (c ClassLevel) String() string {
	switch c {
	case ClassLevelV:
		return "V"
	case ClassLevelInterFirstYear:
		return "Inter 1st Year"
	default:
		return fmt.Sprintf("ClassLevel(%d)", int(c))
	}
}

// MarshalText renders the class label in JSON payloads
func (c ClassLevel) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// NormalizedRecord is one (institution, class level) row of the extract.
// Vacancies is Sanctioned - Admitted and may be negative.
type NormalizedRecord struct {
	SerialNumber    int        `json:"serial_number"`
	District        string     `json:"district"`
	InstitutionName string     `json:"institution_name"`
	ClassLevel      ClassLevel `json:"class"`
	Sanctioned      int        `json:"sanctioned"`
	Admitted        int        `json:"admitted"`
	Vacancies       int        `json:"vacancies"`
}

// HasNegativeVacancy reports whether more students were admitted than sanctioned
func (r NormalizedRecord) HasNegativeVacancy() bool {
	return r.Vacancies < 0
}

// ClassSummary aggregates the records of one class level
type ClassSummary struct {
	ClassLevel   ClassLevel `json:"class"`
	Institutions int        `json:"institutions"`
	Sanctioned   int        `json:"sanctioned"`
	Admitted     int        `json:"admitted"`
	Vacancies    int        `json:"vacancies"`
}

// AdmissionSummary totals a full extract per class level
type AdmissionSummary struct {
	Records   int            `json:"records"`
	Anomalies int            `json:"anomalies"`
	Classes   []ClassSummary `json:"classes"`
}
