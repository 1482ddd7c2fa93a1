package receipt

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/yigit/studyportal/internal/app/models"
)

// CSVHeader is the first row of an applications export.
var CSVHeader = []string{
	"Application ID", "Student Name", "Email", "Phone", "Parent Name", "Parent Phone",
	"Address", "Previous School", "Status", "Payment Sender", "Payment Amount",
	"Transaction ID", "Submitted At",
}

// WriteApplicationsCSV writes apps as CSV, one row per application in the given order.
func WriteApplicationsCSV(w io.Writer, apps []*models.AdmissionApplication) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, app := range apps {
		var sender, amount, txn string
		if app.Payment != nil {
			sender, amount, txn = app.Payment.Sender, app.Payment.Amount, app.Payment.TransactionID
		}
		row := []string{
			app.ID, app.StudentName, app.Email, app.Phone, app.ParentName, app.ParentPhone,
			app.Address, app.PreviousSchool, string(app.Status), sender, amount, txn,
			app.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
