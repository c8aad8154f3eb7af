package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/Himselfzw/ingrid/internal/models"
)

// line width cap keeps long messages from overflowing the page.
const maxCell = 100

type document struct {
	pdf *fpdf.Fpdf
}

func newDocument(title string) *document {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetTextColor(0, 31, 63)
	pdf.CellFormat(0, 12, title, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(51, 51, 51)
	pdf.CellFormat(0, 8, fmt.Sprintf("Generated on: %s", time.Now().Format("2006-01-02 15:04:05")), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	return &document{pdf: pdf}
}

func (d *document) header(text string) {
	d.pdf.SetFont("Helvetica", "B", 10)
	d.pdf.CellFormat(0, 6, text, "B", 1, "L", false, 0, "")
	d.pdf.SetFont("Helvetica", "", 9)
}

func (d *document) row(text string) {
	if len(text) > maxCell {
		text = text[:maxCell] + "..."
	}
	d.pdf.CellFormat(0, 5, text, "", 1, "L", false, 0, "")
}

func (d *document) bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// Users renders the user report.
func Users(users []models.User) ([]byte, error) {
	doc := newDocument("User Report")
	doc.header("Username | Email | Role | Created | Last Login | Active")
	for _, user := range users {
		lastLogin := "N/A"
		if user.LastLogin != nil {
			lastLogin = user.LastLogin.Format("2006-01-02")
		}
		active := "No"
		if user.IsActive {
			active = "Yes"
		}
		doc.row(fmt.Sprintf("%s | %s | %s | %s | %s | %s",
			user.Username, user.Email, user.Role,
			user.CreatedAt.Format("2006-01-02"), lastLogin, active))
	}
	return doc.bytes()
}

// Logs renders the system logs report.
func Logs(entries []models.LogEntry) ([]byte, error) {
	doc := newDocument("System Logs Report")
	doc.header("Timestamp | Level | Message | User")
	for _, entry := range entries {
		username := "N/A"
		if entry.Username != nil {
			username = *entry.Username
		}
		doc.row(fmt.Sprintf("%s | %s | %s | %s",
			entry.CreatedAt.Format("2006-01-02 15:04:05"), entry.Level, entry.Message, username))
	}
	return doc.bytes()
}

// Products renders the products report.
func Products(products []models.Product) ([]byte, error) {
	doc := newDocument("Products Report")
	doc.header("Name | Description | Price | Category")
	for _, product := range products {
		price := "N/A"
		if product.Price != nil {
			price = fmt.Sprintf("$%.2f", *product.Price)
		}
		category := "N/A"
		if product.CategoryName != nil {
			category = *product.CategoryName
		}
		doc.row(fmt.Sprintf("%s | %s | %s | %s",
			product.Name, product.Description, price, category))
	}
	return doc.bytes()
}
