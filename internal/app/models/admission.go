package models

import (
	"fmt"
	"time"
)

// ApplicationStatus is the review state of an admission application.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

// AdmissionForm is one admission batch.
type AdmissionForm struct {
	ID          string    `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	TeacherName string    `json:"teacherName" db:"teacher_name"`
	Subject     string    `json:"subject" db:"subject"`
	ClassName   string    `json:"className" db:"class_name"`
	YearFrom    int       `json:"yearFrom" db:"year_from"`
	YearTo      int       `json:"yearTo" db:"year_to"`
	Fee         float64   `json:"fee" db:"fee"`
	IsOpen      bool      `json:"isOpen" db:"is_open"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// AcademicYear renders the batch year as "2024-25".
func (f *AdmissionForm) AcademicYear() string {
	return formatAcademicYear(f.YearFrom, f.YearTo)
}

// PaymentDetails are the fields read off a payment screenshot. All optional.
type PaymentDetails struct {
	Sender        string `json:"sender,omitempty"`
	Amount        string `json:"amount,omitempty"`
	Date          string `json:"date,omitempty"`
	Time          string `json:"time,omitempty"`
	TransactionID string `json:"transactionId,omitempty"`
}

// AdmissionApplication is a student's application to an AdmissionForm.
type AdmissionApplication struct {
	ID             string            `json:"id" db:"id"`
	FormID         string            `json:"formId" db:"form_id"`
	StudentName    string            `json:"studentName" db:"student_name"`
	Email          string            `json:"email" db:"email"`
	Phone          string            `json:"phone" db:"phone"`
	ParentName     string            `json:"parentName" db:"parent_name"`
	ParentPhone    string            `json:"parentPhone" db:"parent_phone"`
	Address        string            `json:"address" db:"address"`
	PreviousSchool string            `json:"previousSchool" db:"previous_school"`
	Status         ApplicationStatus `json:"status" db:"status"`
	Payment        *PaymentDetails   `json:"payment,omitempty" db:"payment"`
	CreatedAt      time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time         `json:"updatedAt" db:"updated_at"`
}

func formatAcademicYear(from, to int) string {
	if from == 0 {
		return ""
	}
	if to-from == 1 {
		return fmt.Sprintf("%d-%02d", from, to%100)
	}
	return fmt.Sprintf("%d-%d", from, to)
}
