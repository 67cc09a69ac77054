package analysis

import "time"

func newSession(id, driverID uint, date string, completed bool, total, correct int) Session {
	createdAt, err := time.Parse(time.RFC3339, date+"T08:00:00Z")
	if err != nil {
		panic(err)
	}
	return Session{
		ID:             id,
		DriverID:       driverID,
		DriverName:     "Driver",
		QuizDate:       date,
		CreatedAt:      createdAt,
		Completed:      completed,
		TotalQuestions: total,
		TotalCorrect:   correct,
	}
}

func newResponse(id, sessionID, questionID uint, option int, correct bool) Response {
	return Response{
		ID:             id,
		SessionID:      sessionID,
		QuestionID:     questionID,
		SelectedOption: option,
		Correct:        correct,
		Language:       "en",
	}
}

func strPtr(s string) *string {
	return &s
}
