package dataprocessing

import (
	"fmt"

	apperrors "admissioncli/internal/errors"
	"admissioncli/pkg/contracts/domain"
)

// classBlock names the four count columns summed into one class level.
type classBlock struct {
	level                domain.ClassLevel
	sanctioned, admitted [2]string
}

var classBlocks = []classBlock{
	{
		level:      domain.ClassLevelV,
		sanctioned: [2]string{domain.ColVMinoritiesSanctioned, domain.ColVNonMinoritiesSanctioned},
		admitted:   [2]string{domain.ColVMinoritiesAdmitted, domain.ColVNonMinoritiesAdmitted},
	},
	{
		level:      domain.ClassLevelInterFirstYear,
		sanctioned: [2]string{domain.ColInterMinoritiesSanctioned, domain.ColInterNonMinoritiesSanctioned},
		admitted:   [2]string{domain.ColInterMinoritiesAdmitted, domain.ColInterNonMinoritiesAdmitted},
	},
}

// Transform reshapes the wide table into one record per (institution, class
// level). Every V record precedes every Inter record and each block keeps
// source row order. Cell anomalies never fail the call; a nil table, a
// missing canonical column or a row of the wrong arity does.
func Transform(t *domain.Table) ([]domain.NormalizedRecord, error) {
	if t == nil {
		return nil, apperrors.NewTransformError("no table to transform", nil)
	}

	idx := make(map[string]int, len(domain.RawColumns))
	for _, name := range domain.RawColumns {
		i := t.ColumnIndex(name)
		if i < 0 {
			return nil, apperrors.NewTransformError(fmt.Sprintf("missing column %q", name), nil).
				WithContext("columns", t.Columns)
		}
		idx[name] = i
	}

	for n, row := range t.Rows {
		if len(row) != len(t.Columns) {
			return nil, apperrors.NewTransformError(
				fmt.Sprintf("row %d has %d cells, expected %d", n, len(row), len(t.Columns)), nil)
		}
	}

	// Identity fields are cleaned once and shared by both blocks.
	type identity struct {
		serial   int
		district string
		name     string
	}
	ids := make([]identity, len(t.Rows))
	for n, row := range t.Rows {
		ids[n] = identity{
			serial:   CoerceInt(row[idx[domain.ColSerialNumber]]),
			district: row[idx[domain.ColDistrict]],
			name:     CleanInstitutionName(row[idx[domain.ColInstitutionName]]),
		}
	}

	records := make([]domain.NormalizedRecord, 0, len(classBlocks)*len(t.Rows))
	for _, block := range classBlocks {
		for n, row := range t.Rows {
			sanctioned := CoerceInt(row[idx[block.sanctioned[0]]]) + CoerceInt(row[idx[block.sanctioned[1]]])
			admitted := CoerceInt(row[idx[block.admitted[0]]]) + CoerceInt(row[idx[block.admitted[1]]])
			records = append(records, domain.NormalizedRecord{
				SerialNumber:    ids[n].serial,
				District:        ids[n].district,
				InstitutionName: ids[n].name,
				ClassLevel:      block.level,
				Sanctioned:      sanctioned,
				Admitted:        admitted,
				Vacancies:       sanctioned - admitted,
			})
		}
	}
	return records, nil
}

// Summarize totals records per class level, in class order.
func Summarize(records []domain.NormalizedRecord) domain.AdmissionSummary {
	summary := domain.AdmissionSummary{Records: len(records)}
	byLevel := make(map[domain.ClassLevel]*domain.ClassSummary, len(classBlocks))
	for _, block := range classBlocks {
		summary.Classes = append(summary.Classes, domain.ClassSummary{ClassLevel: block.level})
	}
	for i := range summary.Classes {
		byLevel[summary.Classes[i].ClassLevel] = &summary.Classes[i]
	}

	for _, r := range records {
		if r.HasNegativeVacancy() {
			summary.Anomalies++
		}
		cs, ok := byLevel[r.ClassLevel]
		if !ok {
			continue
		}
		cs.Institutions++
		cs.Sanctioned += r.Sanctioned
		cs.Admitted += r.Admitted
		cs.Vacancies += r.Vacancies
	}
	return summary
}
