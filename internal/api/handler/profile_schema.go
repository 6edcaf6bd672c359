package handler

// upsertProfileRequest is the body of POST /api/profile. Status and skills
// are required; everything else merges sparsely into the stored profile.
// Skills is a free-text comma-separated list.
type upsertProfileRequest struct {
	Status         string `json:"status" validate:"required"`
	Skills         string `json:"skills" validate:"required"`
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Bio            string `json:"bio"`
	GithubUsername string `json:"githubusername"`
	Youtube        string `json:"youtube"`
	Facebook       string `json:"facebook"`
	Twitter        string `json:"twitter"`
	Instagram      string `json:"instagram"`
	Linkedin       string `json:"linkedin"`
}

// addExperienceRequest is the body of PUT /api/profile/experience.
// Dates arrive as "2006-01-02" or RFC 3339 strings.
type addExperienceRequest struct {
	Title       string `json:"title"   validate:"required"`
	Company     string `json:"company" validate:"required"`
	From        string `json:"from"    validate:"required"`
	Location    string `json:"location"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// addEducationRequest is the body of PUT /api/profile/education.
type addEducationRequest struct {
	School       string `json:"school"       validate:"required"`
	Degree       string `json:"degree"       validate:"required"`
	FieldOfStudy string `json:"fieldofstudy" validate:"required"`
	From         string `json:"from"         validate:"required"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

// messageResponse is the {"msg": ...} envelope the original API used for
// acknowledge-only operations.
type messageResponse struct {
	Msg string `json:"msg"`
}
