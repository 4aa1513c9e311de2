package models

// SubmitAnswerRequest is the body of POST /missions/:id/complete.
// Text puzzles send Answer; choice and matching puzzles send Answers.
type SubmitAnswerRequest struct {
	Answer  string   `json:"answer,omitempty"`
	Answers []string `json:"answers,omitempty"`
}

// RegisterUserRequest is the body of POST /users/register. Empty fields keep
// the stored values.
type RegisterUserRequest struct {
	DisplayName string `json:"displayName,omitempty" binding:"omitempty,max=80"`
	PhotoURL    string `json:"photoURL,omitempty" binding:"omitempty,url"`
}
