// Package receipt renders admission receipts and application exports.
package receipt

import (
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"strings"

	"github.com/fogleman/gg"
	"github.com/skip2/go-qrcode"
	"github.com/yigit/studyportal/internal/app/models"
)

const (
	cardWidth  = 640
	cardHeight = 360
	qrSize     = 220
	margin     = 24.0
	lineHeight = 22.0
)

var (
	headerColor = color.NRGBA{R: 0x1e, G: 0x3a, B: 0x8a, A: 0xff}
	textColor   = color.NRGBA{R: 0x11, G: 0x18, B: 0x27, A: 0xff}
	mutedColor  = color.NRGBA{R: 0x6b, G: 0x72, B: 0x80, A: 0xff}
)

// QRPayload is the JSON encoded into the receipt's QR code.
type QRPayload struct {
	ApplicationID string                   `json:"applicationId"`
	FormID        string                   `json:"formId"`
	StudentName   string                   `json:"studentName"`
	Status        models.ApplicationStatus `json:"status"`
}

// Payload builds the QR payload of an application.
func Payload(app *models.AdmissionApplication) ([]byte, error) {
	return json.Marshal(QRPayload{
		ApplicationID: app.ID,
		FormID:        app.FormID,
		StudentName:   app.StudentName,
		Status:        app.Status,
	})
}

// RenderPNG draws the receipt card of app for its batch form and writes it as PNG.
func RenderPNG(w io.Writer, form *models.AdmissionForm, app *models.AdmissionApplication) error {
	payload, err := Payload(app)
	if err != nil {
		return fmt.Errorf("receipt payload: %w", err)
	}
	qr, err := qrcode.New(string(payload), qrcode.Medium)
	if err != nil {
		return fmt.Errorf("receipt qr: %w", err)
	}

	dc := gg.NewContext(cardWidth, cardHeight)
	dc.SetColor(color.White)
	dc.Clear()

	dc.SetColor(headerColor)
	dc.DrawRectangle(0, 0, cardWidth, 56)
	dc.Fill()
	dc.SetColor(color.White)
	dc.DrawString("ADMISSION RECEIPT", margin, 34)

	y := 56 + margin + 8
	line := func(label, value string, c color.Color) {
		dc.SetColor(mutedColor)
		dc.DrawString(label, margin, y)
		dc.SetColor(c)
		dc.DrawString(truncate(value, 40), margin+110, y)
		y += lineHeight
	}
	line("Batch", form.Title, textColor)
	line("Session", form.AcademicYear(), textColor)
	line("Teacher", form.TeacherName, textColor)
	line("Student", app.StudentName, textColor)
	line("Email", app.Email, textColor)
	line("Phone", app.Phone, textColor)
	line("Fee", fmt.Sprintf("Rs. %.2f", form.Fee), textColor)
	line("Status", strings.ToUpper(string(app.Status)), statusColor(app.Status))
	line("Submitted", app.CreatedAt.Format("02 Jan 2006 15:04"), textColor)

	dc.DrawImage(qr.Image(qrSize), cardWidth-qrSize-int(margin), 56+int(margin))
	dc.SetColor(mutedColor)
	dc.DrawStringAnchored("Ref "+shortID(app.ID), float64(cardWidth)-margin-qrSize/2, 56+margin+qrSize+14, 0.5, 0.5)

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

func statusColor(s models.ApplicationStatus) color.Color {
	switch s {
	case models.ApplicationApproved:
		return color.NRGBA{R: 0x04, G: 0x78, B: 0x57, A: 0xff}
	case models.ApplicationRejected:
		return color.NRGBA{R: 0xb9, G: 0x1c, B: 0x1c, A: 0xff}
	default:
		return color.NRGBA{R: 0xb4, G: 0x53, B: 0x09, A: 0xff}
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func shortID(id string) string {
	if len(id) > 8 {
		return strings.ToUpper(id[:8])
	}
	return strings.ToUpper(id)
}
