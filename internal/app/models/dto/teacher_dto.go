package dto

// TeacherRequest is the admin create/update payload.
type TeacherRequest struct {
	Name          string `json:"name" validate:"required,notblank,min=3,max=80"`
	Subject       string `json:"subject" validate:"required,notblank,min=2,max=60"`
	Qualification string `json:"qualification" validate:"required,notblank,min=2,max=120"`
	Experience    string `json:"experience" validate:"required,notblank,max=60"`
	ImageURL      string `json:"imageUrl,omitempty" validate:"omitempty,url"`
}
