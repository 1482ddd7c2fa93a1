package dto

import "github.com/yigit/studyportal/internal/app/models"

// AdmissionFormRequest is the admin create/update payload of a batch.
type AdmissionFormRequest struct {
	Title       string  `json:"title" validate:"required,notblank,min=3,max=120"`
	Description string  `json:"description,omitempty" validate:"omitempty,max=5000"`
	TeacherName string  `json:"teacherName" validate:"required,notblank,min=3,max=80"`
	Subject     string  `json:"subject" validate:"required,notblank,min=2,max=60"`
	ClassName   string  `json:"className" validate:"required,notblank,min=2,max=80"`
	YearFrom    int     `json:"yearFrom" validate:"required,gte=2000,lte=2100"`
	YearTo      int     `json:"yearTo" validate:"required,gtfield=YearFrom,lte=2101"`
	Fee         float64 `json:"fee" validate:"gte=0"`
	IsOpen      bool    `json:"isOpen"`
	// GenerateDescription asks the model to write the description when it is empty.
	GenerateDescription bool `json:"generateDescription,omitempty"`
}

// ToModel converts the request into an AdmissionForm without id or timestamps.
func (r *AdmissionFormRequest) ToModel() *models.AdmissionForm {
	return &models.AdmissionForm{
		Title:       r.Title,
		Description: r.Description,
		TeacherName: r.TeacherName,
		Subject:     r.Subject,
		ClassName:   r.ClassName,
		YearFrom:    r.YearFrom,
		YearTo:      r.YearTo,
		Fee:         r.Fee,
		IsOpen:      r.IsOpen,
	}
}

// ApplicationRequest is a public application to an open batch.
type ApplicationRequest struct {
	StudentName    string `json:"studentName" validate:"required,notblank,min=3,max=80"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone" validate:"required,phone"`
	ParentName     string `json:"parentName" validate:"required,notblank,min=3,max=80"`
	ParentPhone    string `json:"parentPhone" validate:"required,phone"`
	Address        string `json:"address" validate:"required,notblank,min=10,max=300"`
	PreviousSchool string `json:"previousSchool,omitempty" validate:"omitempty,max=120"`
}

// ToModel converts the request into an application of formID.
func (r *ApplicationRequest) ToModel(formID string) *models.AdmissionApplication {
	return &models.AdmissionApplication{
		FormID:         formID,
		StudentName:    r.StudentName,
		Email:          r.Email,
		Phone:          r.Phone,
		ParentName:     r.ParentName,
		ParentPhone:    r.ParentPhone,
		Address:        r.Address,
		PreviousSchool: r.PreviousSchool,
		Status:         models.ApplicationPending,
	}
}

// ApplicationStatusRequest changes the review state of an application.
type ApplicationStatusRequest struct {
	Status models.ApplicationStatus `json:"status" validate:"required,oneof=pending approved rejected"`
}

// PaymentScreenshotRequest attaches a payment screenshot to an application.
type PaymentScreenshotRequest struct {
	PhotoDataURI string `json:"photoDataUri" validate:"required,datauri"`
}
