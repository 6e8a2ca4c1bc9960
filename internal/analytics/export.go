package analytics

import (
	"encoding/csv"
	"io"
	"time"

	"github.com/DucLamDev/quanlyphongkham-BE/internal/appointments"
)

// utf8BOM keeps spreadsheet applications from mangling Vietnamese text.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var exportHeader = []string{
	"Ngày tạo",
	"Họ tên",
	"Số điện thoại",
	"Chuyên khoa",
	"Ngày hẹn",
	"Giờ hẹn",
	"Trạng thái",
}

// WriteCSV renders the appointment list as a BOM-prefixed CSV with a
// fixed column order and dd/mm/yyyy dates.
func WriteCSV(w io.Writer, items []appointments.Appointment) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}
	for _, a := range items {
		row := []string{
			formatDate(a.CreatedAt),
			a.FullName,
			a.Phone,
			a.Specialty,
			formatDate(a.AppointmentDate),
			a.AppointmentTime,
			a.Status,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatDate(t time.Time) string {
	return t.Format("02/01/2006")
}
