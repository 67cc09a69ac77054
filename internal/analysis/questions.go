package analysis

import "sort"

type questionAccumulator struct {
	perf        QuestionPerformance
	optionOrder []int
	options     map[int]int
}

// AnalyzeQuestions aggregates responses per question, classifies difficulty and rolls
// the result up by topic. A non-empty language keeps only questions in that language;
// grouping happens over every response first.
func AnalyzeQuestions(responses []Response, language string) QuestionAnalysis {
	order := make([]uint, 0)
	byQuestion := make(map[uint]*questionAccumulator)

	for _, r := range responses {
		acc, ok := byQuestion[r.QuestionID]
		if !ok {
			acc = &questionAccumulator{
				perf: QuestionPerformance{
					QuestionID:    r.QuestionID,
					QuestionText:  r.QuestionText,
					Topic:         r.Topic,
					Language:      r.Language,
					CorrectOption: r.CorrectOption,
				},
				options: make(map[int]int),
			}
			byQuestion[r.QuestionID] = acc
			order = append(order, r.QuestionID)
		}

		acc.perf.TotalAttempts++
		if r.Correct {
			acc.perf.CorrectAttempts++
		}
		if _, seen := acc.options[r.SelectedOption]; !seen {
			acc.optionOrder = append(acc.optionOrder, r.SelectedOption)
		}
		acc.options[r.SelectedOption]++
	}

	questions := make([]QuestionPerformance, 0, len(order))
	for _, id := range order {
		acc := byQuestion[id]
		if language != "" && acc.perf.Language != language {
			continue
		}

		q := acc.perf
		q.IncorrectAttempts = q.TotalAttempts - q.CorrectAttempts
		q.Accuracy = percent(q.CorrectAttempts, q.TotalAttempts)
		q.DifficultyLevel = ClassifyDifficulty(q.Accuracy)
		q.OptionSelections = make([]OptionCount, 0, len(acc.optionOrder))
		for _, option := range acc.optionOrder {
			q.OptionSelections = append(q.OptionSelections, OptionCount{Option: option, Count: acc.options[option]})
		}
		q.MostCommonMistake = mostSelectedOption(q.OptionSelections)

		questions = append(questions, q)
	}

	var dist DifficultyDistribution
	for _, q := range questions {
		switch q.DifficultyLevel {
		case DifficultyEasy:
			dist.Easy++
		case DifficultyMedium:
			dist.Medium++
		default:
			dist.Hard++
		}
	}

	byAccuracy := make([]QuestionPerformance, len(questions))
	copy(byAccuracy, questions)
	sort.SliceStable(byAccuracy, func(i, j int) bool {
		return byAccuracy[i].Accuracy > byAccuracy[j].Accuracy
	})

	return QuestionAnalysis{
		TotalQuestions:         len(questions),
		DifficultyDistribution: dist,
		EasiestQuestions:       topN(byAccuracy, rankingLimit),
		HardestQuestions:       bottomN(byAccuracy, rankingLimit),
		TopicAnalysis:          analyzeTopics(questions),
	}
}

// ClassifyDifficulty maps an accuracy percentage to a difficulty tier.
func ClassifyDifficulty(accuracy float64) DifficultyLevel {
	switch {
	case accuracy >= 70:
		return DifficultyEasy
	case accuracy >= 40:
		return DifficultyMedium
	default:
		return DifficultyHard
	}
}

// mostSelectedOption returns the option with the highest count; ties keep the
// first-seen option. Nil when nothing was selected.
func mostSelectedOption(selections []OptionCount) *int {
	if len(selections) == 0 {
		return nil
	}
	best := selections[0]
	for _, sel := range selections[1:] {
		if sel.Count > best.Count {
			best = sel
		}
	}
	option := best.Option
	return &option
}

func analyzeTopics(questions []QuestionPerformance) []TopicPerformance {
	order := make([]string, 0)
	byTopic := make(map[string]*TopicPerformance)

	for _, q := range questions {
		name := UncategorizedTopic
		if q.Topic != nil && *q.Topic != "" {
			name = *q.Topic
		}
		t, ok := byTopic[name]
		if !ok {
			t = &TopicPerformance{Topic: name}
			byTopic[name] = t
			order = append(order, name)
		}
		t.TotalQuestions++
		t.TotalAttempts += q.TotalAttempts
		t.TotalCorrect += q.CorrectAttempts
	}

	topics := make([]TopicPerformance, 0, len(order))
	for _, name := range order {
		t := *byTopic[name]
		t.AverageAccuracy = percent(t.TotalCorrect, t.TotalAttempts)
		topics = append(topics, t)
	}
	sort.SliceStable(topics, func(i, j int) bool {
		return topics[i].AverageAccuracy > topics[j].AverageAccuracy
	})
	return topics
}
