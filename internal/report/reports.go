package report

import (
	"strings"

	"catalog/internal/aggregate"
	"catalog/internal/domain"
	"catalog/internal/duplicates"
	"catalog/internal/textstats"
	"catalog/internal/tokenizer"
)

// Report is a named, parameterless query over the catalog.
type Report struct {
	Name        string
	Description string
	run         func(*Service) ([]domain.Row, error)
}

var registry = []Report{
	{"category-share", "records per category with percentage of total", (*Service).categoryShare},
	{"subcategory-rank", "subcategories ranked by size within each category", (*Service).subcategoryRank},
	{"category-rollup", "category and subcategory counts with subtotals and grand total", (*Service).categoryRollup},
	{"material-mix", "material inferred from descriptions with percentage of total", (*Service).materialMix},
	{"material-rank", "materials ranked by frequency within each category", (*Service).materialRank},
	{"brand-hints", "first word of product names shared by many records", (*Service).brandHints},
	{"keyword-frequency", "most frequent description tokens", (*Service).keywordFrequency},
	{"longest-descriptions", "records with the longest descriptions", (*Service).longestDescriptions},
	{"description-stats", "description length distribution per category", (*Service).descriptionStats},
	{"duplicate-names", "product names shared by more than one record", (*Service).duplicateNames},
}

// Reports lists the available reports in display order.
func Reports() []Report { return append([]Report(nil), registry...) }

// Names lists the report names in display order.
func Names() []string {
	out := make([]string, len(registry))
	for i, r := range registry {
		out[i] = r.Name
	}
	return out
}

// Lookup finds a report by name.
func Lookup(name string) (Report, bool) {
	for _, r := range registry {
		if r.Name == name {
			return r, true
		}
	}
	return Report{}, false
}

type rower interface{ Row() domain.Row }

func toRows[T rower](items []T) []domain.Row {
	rows := make([]domain.Row, len(items))
	for i, it := range items {
		rows[i] = it.Row()
	}
	return rows
}

func (s *Service) categoryShare() ([]domain.Row, error) {
	groups, err := aggregate.GroupCount(s.table, domain.FieldCategory)
	if err != nil {
		return nil, err
	}
	aggregate.SortByCount(groups)
	shares, err := aggregate.WithShareOfTotal(groups)
	if err != nil {
		return nil, err
	}
	return toRows(shares), nil
}

func (s *Service) subcategoryRank() ([]domain.Row, error) {
	groups, err := aggregate.GroupCount(s.table, domain.FieldCategory, domain.FieldSubcategory)
	if err != nil {
		return nil, err
	}
	ranked, err := aggregate.WithPartitionRank(groups, []string{string(domain.FieldCategory)}, aggregate.CountColumn)
	if err != nil {
		return nil, err
	}
	return toRows(ranked), nil
}

func (s *Service) categoryRollup() ([]domain.Row, error) {
	rows, err := aggregate.Rollup(s.table, domain.FieldCategory, domain.FieldSubcategory)
	if err != nil {
		return nil, err
	}
	return toRows(rows), nil
}

func (s *Service) materialDimension() (aggregate.Dimension, error) {
	field, err := domain.ParseField(s.cfg.Classifier.Field)
	if err != nil {
		return aggregate.Dimension{}, err
	}
	labels, err := s.classifier.ClassifyField(s.table, field)
	if err != nil {
		return aggregate.Dimension{}, err
	}
	return aggregate.LabelDimension("material", labels), nil
}

func (s *Service) materialMix() ([]domain.Row, error) {
	material, err := s.materialDimension()
	if err != nil {
		return nil, err
	}
	groups, err := aggregate.GroupCountBy(s.table, material)
	if err != nil {
		return nil, err
	}
	aggregate.SortByCount(groups)
	shares, err := aggregate.WithShareOfTotal(groups)
	if err != nil {
		return nil, err
	}
	return toRows(shares), nil
}

func (s *Service) materialRank() ([]domain.Row, error) {
	category, err := aggregate.FieldDimension(domain.FieldCategory)
	if err != nil {
		return nil, err
	}
	material, err := s.materialDimension()
	if err != nil {
		return nil, err
	}
	groups, err := aggregate.GroupCountBy(s.table, category, material)
	if err != nil {
		return nil, err
	}
	ranked, err := aggregate.WithPartitionRank(groups, []string{category.Name}, aggregate.CountColumn)
	if err != nil {
		return nil, err
	}
	return toRows(ranked), nil
}

// brandHint takes the first whitespace-delimited word of a product name.
func brandHint(name domain.Text) domain.Value {
	if !name.Valid {
		return domain.Missing()
	}
	words := strings.Fields(name.S)
	if len(words) == 0 {
		return domain.Missing()
	}
	return domain.Concrete(words[0])
}

func (s *Service) brandHints() ([]domain.Row, error) {
	values := make([]domain.Value, s.table.Len())
	for i, rec := range s.table.Scan() {
		values[i] = brandHint(rec.ProductName)
	}
	groups, err := aggregate.GroupCountBy(s.table, aggregate.ValuesDimension("brand_hint", values))
	if err != nil {
		return nil, err
	}
	kept := groups[:0]
	for _, g := range aggregate.Filter(groups, s.cfg.Thresholds.MinBrandGroupSize) {
		if v, _ := g.Key.Get("brand_hint"); v.Kind == domain.KindConcrete {
			kept = append(kept, g)
		}
	}
	aggregate.SortByCount(kept)
	return toRows(kept), nil
}

func (s *Service) keywordFrequency() ([]domain.Row, error) {
	texts, err := s.table.Texts(domain.FieldDescription)
	if err != nil {
		return nil, err
	}
	top := tokenizer.Top(tokenizer.Count(s.tok, texts), s.cfg.Thresholds.MinTokenFrequency, s.cfg.Limits.Keywords)
	return toRows(top), nil
}

func (s *Service) longestDescriptions() ([]domain.Row, error) {
	entries, err := textstats.Longest(s.table, domain.FieldDescription, s.cfg.Limits.LongestDescriptions)
	if err != nil {
		return nil, err
	}
	return toRows(entries), nil
}

func (s *Service) descriptionStats() ([]domain.Row, error) {
	category, err := aggregate.FieldDimension(domain.FieldCategory)
	if err != nil {
		return nil, err
	}
	summaries, err := textstats.Describe(s.table, domain.FieldDescription, category)
	if err != nil {
		return nil, err
	}
	return toRows(summaries), nil
}

func (s *Service) duplicateNames() ([]domain.Row, error) {
	field, err := domain.ParseField(s.cfg.Duplicates.Field)
	if err != nil {
		return nil, err
	}
	norm, err := duplicates.NormalizerByName(s.cfg.Duplicates.Normalizer)
	if err != nil {
		return nil, err
	}
	dups, err := duplicates.Find(s.table, field, duplicates.WithNormalizer(norm))
	if err != nil {
		return nil, err
	}
	return toRows(dups), nil
}
