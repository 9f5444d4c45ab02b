package correction

// Rule is a deduplicated correction pattern: candidates sharing the same
// normalized (wrong, right) pair merged into one record.
type Rule struct {
	WrongPattern string    `json:"wrong_pattern"`
	RightPattern string    `json:"right_pattern"`
	ErrorType    ErrorKind `json:"error_type"`
	Confidence   float64   `json:"confidence"`
	BaseCommand  string    `json:"base_command"`
	Occurrences  int       `json:"occurrences"`
}

// Deduplicate merges candidates by their normalized (wrong, right) pair.
// Occurrences accumulate; confidence keeps the maximum observed, so a rule
// seen once with high confidence is not diluted by noisier repeats. Output
// preserves first-seen order.
func Deduplicate(candidates []Candidate) []Rule {
	index := make(map[string]int, len(candidates))
	rules := make([]Rule, 0, len(candidates))

	for _, c := range candidates {
		key := c.WrongPattern + "\x00" + c.RightPattern
		if i, ok := index[key]; ok {
			rules[i].Occurrences++
			if c.Confidence > rules[i].Confidence {
				rules[i].Confidence = c.Confidence
			}
			continue
		}
		index[key] = len(rules)
		rules = append(rules, Rule{
			WrongPattern: c.WrongPattern,
			RightPattern: c.RightPattern,
			ErrorType:    c.ErrorType,
			Confidence:   c.Confidence,
			BaseCommand:  c.BaseCommand,
			Occurrences:  1,
		})
	}

	return rules
}

// Filter keeps rules meeting both thresholds.
func Filter(rules []Rule, minConfidence float64, minOccurrences int) []Rule {
	filtered := make([]Rule, 0, len(rules))
	for _, r := range rules {
		if r.Confidence >= minConfidence && r.Occurrences >= minOccurrences {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
