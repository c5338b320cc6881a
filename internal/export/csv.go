package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"trip-planner-service/internal/domain"
)

// Column order of the itinerary report.
var StopHeaders = []string{"Stop #", "Type", "Name", "Address", "ETA", "Depart", "Service Minutes"}

// BuildCSV renders a header row followed by rows, one line each.
// Lines end in LF and the final line has no terminator.
func BuildCSV(headers []string, rows [][]string) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(headers); err != nil {
		return "", fmt.Errorf("build csv: write header: %w", err)
	}
	for i, row := range rows {
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("build csv: write row %d: %w", i+1, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("build csv: flush: %w", err)
	}

	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// StopRows flattens timed stops into report rows matching StopHeaders.
func StopRows(stops []domain.TimedStop) [][]string {
	rows := make([][]string, 0, len(stops))
	for _, s := range stops {
		rows = append(rows, []string{
			strconv.Itoa(s.Order),
			string(s.Type),
			s.Name,
			s.Address,
			s.ArriveAt.Format(domain.TimestampLayout),
			s.DepartAt.Format(domain.TimestampLayout),
			strconv.Itoa(s.ServiceMinutes),
		})
	}
	return rows
}
