package questionnaire

import (
	"fmt"
	"slices"
	"sort"
)

// validateVariant performs all integrity checks on a question bank.
// Returns a *ConfigError describing every problem found, or nil if valid.
func validateVariant(v *Variant) error {
	var errs []string

	if v.ID == "" {
		errs = append(errs, "id is required")
	}
	if v.Multiplier < 0 || v.Multiplier > 2 {
		errs = append(errs, fmt.Sprintf("multiplier must be 1 or 2, got %d", v.Multiplier))
	}
	if len(v.Items) != ItemCount {
		errs = append(errs, fmt.Sprintf("expected %d item prompts, got %d", ItemCount, len(v.Items)))
	}
	for i, text := range v.Items {
		if text == "" {
			errs = append(errs, fmt.Sprintf("item %d has an empty prompt", i+1))
		}
	}
	if len(v.Options) != MaxAnswer+1 {
		errs = append(errs, fmt.Sprintf("expected %d answer options, got %d", MaxAnswer+1, len(v.Options)))
	}

	errs = append(errs, validatePartition(v.Subscales)...)

	maxTotal := v.MaxTotal()
	for _, sc := range v.Subscales {
		errs = append(errs, validateBands(sc, maxTotal)...)
	}

	errs = append(errs, validateIdentity(v.Identity)...)

	if len(errs) > 0 {
		return &ConfigError{Variant: v.ID, Problems: errs}
	}
	return nil
}

// validatePartition checks the subscales cover positions 1..21 exactly once
// and match the shared partition.
func validatePartition(subscales []Subscale) []string {
	var errs []string

	seenScale := make(map[SubscaleID]bool, len(subscales))
	owner := make(map[int]SubscaleID, ItemCount)

	for _, sc := range subscales {
		if !sc.ID.Valid() {
			errs = append(errs, fmt.Sprintf("unknown subscale %q", sc.ID))
			continue
		}
		if seenScale[sc.ID] {
			errs = append(errs, fmt.Sprintf("duplicate subscale %q", sc.ID))
			continue
		}
		seenScale[sc.ID] = true

		if len(sc.Items) != ItemsPerSubscale {
			errs = append(errs, fmt.Sprintf("subscale %q has %d items, want %d", sc.ID, len(sc.Items), ItemsPerSubscale))
		}
		for _, pos := range sc.Items {
			if pos < 1 || pos > ItemCount {
				errs = append(errs, fmt.Sprintf("subscale %q references item %d outside 1..%d", sc.ID, pos, ItemCount))
				continue
			}
			if prev, ok := owner[pos]; ok {
				errs = append(errs, fmt.Sprintf("item %d is scored by both %q and %q", pos, prev, sc.ID))
				continue
			}
			owner[pos] = sc.ID
		}

		want := slices.Clone(Partition[sc.ID])
		got := slices.Clone(sc.Items)
		sort.Ints(want)
		sort.Ints(got)
		if !slices.Equal(want, got) {
			errs = append(errs, fmt.Sprintf("subscale %q items %v differ from the shared partition %v", sc.ID, got, want))
		}
	}

	for _, id := range AllSubscales() {
		if !seenScale[id] {
			errs = append(errs, fmt.Sprintf("subscale %q is missing", id))
		}
	}
	for pos := 1; pos <= ItemCount; pos++ {
		if _, ok := owner[pos]; !ok {
			errs = append(errs, fmt.Sprintf("item %d is not scored by any subscale", pos))
		}
	}
	return errs
}

// validateBands checks a band table is disjoint and covers 0..maxTotal.
func validateBands(sc Subscale, maxTotal int) []string {
	var errs []string
	if len(sc.Bands) == 0 {
		return []string{fmt.Sprintf("subscale %q has no severity bands", sc.ID)}
	}

	bands := sortedBands(sc.Bands)
	for _, b := range bands {
		if b.Label == "" {
			errs = append(errs, fmt.Sprintf("subscale %q band %s has no label", sc.ID, b))
		}
		if b.Low < 0 {
			errs = append(errs, fmt.Sprintf("subscale %q band %s starts below 0", sc.ID, b))
		}
		if b.High < b.Low {
			errs = append(errs, fmt.Sprintf("subscale %q band %s has high < low", sc.ID, b))
		}
	}

	if bands[0].Low > 0 {
		errs = append(errs, fmt.Sprintf("subscale %q: scores 0..%d match no band", sc.ID, bands[0].Low-1))
	}
	for i := 1; i < len(bands); i++ {
		prev, cur := bands[i-1], bands[i]
		switch {
		case cur.Low <= prev.High:
			errs = append(errs, fmt.Sprintf("subscale %q: bands %s and %s overlap", sc.ID, prev, cur))
		case cur.Low > prev.High+1 && prev.High < maxTotal:
			errs = append(errs, fmt.Sprintf("subscale %q: scores %d..%d match no band", sc.ID, prev.High+1, cur.Low-1))
		}
	}
	if last := bands[len(bands)-1]; last.High < maxTotal {
		errs = append(errs, fmt.Sprintf("subscale %q: scores %d..%d match no band", sc.ID, last.High+1, maxTotal))
	}
	return errs
}

func validateIdentity(c IdentityConfig) []string {
	var errs []string
	for _, f := range c.Fields {
		if !f.Valid() {
			errs = append(errs, fmt.Sprintf("unknown identity field %q", f))
		}
	}
	for _, f := range c.Required {
		if !c.Collects(f) {
			errs = append(errs, fmt.Sprintf("required identity field %q is not collected", f))
		}
	}
	if c.Collects(FieldCampus) && len(c.Campuses) == 0 {
		errs = append(errs, "campus is collected but no campuses are listed")
	}
	return errs
}

// sortedBands returns a copy of bands ordered by Low.
func sortedBands(bands []Band) []Band {
	out := slices.Clone(bands)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Low < out[j].Low })
	return out
}
