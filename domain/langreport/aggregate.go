package langreport

import "sort"

// Counting policy: every tidy record counts once. A country listing the same language at two
// slots in one year contributes 2. The same rule is used by every aggregate, so the per-year
// counts of a language always sum to its overall count.

// AggregateByYear counts records per (language, year).
func AggregateByYear(tidy []TidyRecord) ByYear {
	out := make(ByYear)
	for _, r := range tidy {
		out[LanguageYear{Language: r.Language, Year: r.Year}]++
	}
	return out
}

// AggregateOverall counts records per language across all years and slots.
func AggregateOverall(tidy []TidyRecord) Overall {
	out := make(Overall)
	for _, r := range tidy {
		out[r.Language]++
	}
	return out
}

// AggregateByRank counts records per (language, year, slot).
func AggregateByRank(tidy []TidyRecord) ByRank {
	out := make(ByRank)
	for _, r := range tidy {
		out[LanguageYearSlot{Language: r.Language, Year: r.Year, Slot: r.Slot}]++
	}
	return out
}

// Ranked lists every language by count descending, ties broken by name.
func (o Overall) Ranked() []LanguageCount {
	out := make([]LanguageCount, 0, len(o))
	for lang, n := range o {
		out = append(out, LanguageCount{Language: lang, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Language < out[j].Language
	})
	return out
}

// TopLanguages returns the n most counted languages. n <= 0 returns all of them.
func TopLanguages(o Overall, n int) []string {
	ranked := o.Ranked()
	if n > 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	out := make([]string, len(ranked))
	for i, lc := range ranked {
		out[i] = lc.Language
	}
	return out
}

// Series returns the per-year counts of one language over FirstYear..LastYear, 0 where absent.
func (b ByYear) Series(language string) []int {
	years := Years()
	out := make([]int, len(years))
	for i, y := range years {
		out[i] = b[LanguageYear{Language: language, Year: y}]
	}
	return out
}

// Languages returns the distinct languages in the aggregate, sorted.
func (b ByYear) Languages() []string {
	seen := make(map[string]bool)
	var out []string
	for k := range b {
		if !seen[k.Language] {
			seen[k.Language] = true
			out = append(out, k.Language)
		}
	}
	sort.Strings(out)
	return out
}

// Filter keeps only the given languages.
func (r ByRank) Filter(languages []string) ByRank {
	keep := make(map[string]bool, len(languages))
	for _, l := range languages {
		keep[l] = true
	}
	out := make(ByRank)
	for k, v := range r {
		if keep[k.Language] {
			out[k] = v
		}
	}
	return out
}
