// Package output builds migration rows from fetched clients and writes them
// as the target system's bulk import CSV, with a plain text preview writer.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"Migrate-Meraki-Clients-To-Segments/pkg/macaddr"
	"Migrate-Meraki-Clients-To-Segments/pkg/meraki"
)

// DefaultDescription is written to the Description column of every row.
const DefaultDescription = "Imported from Meraki migration"

// csvHeader is the import schema expected by the target system's bulk
// import tool. Column order matters.
var csvHeader = []string{
	"MAC Address (Required)",
	"Segment (Required for allow state)",
	"Lock to Port (Optional)",
	"Site (Optional)",
	"Building (Optional)",
	"Floor (Optional)",
	"Allow or Deny (Required)",
	"Description (Optional)",
	"Static IP (Optional)",
	"IP Address (Optional)",
	"Passive IP (Optional)",
}

// MigrationRow is one client joined with its resolved segment, ready for
// CSV serialization.
type MigrationRow struct {
	MAC     string
	Segment string
	IP      string
}

// UnmappedVLANError reports a client whose VLAN has no segment mapping.
// It is raised before any output file is opened.
type UnmappedVLANError struct {
	MAC  string
	VLAN int
}

func (e *UnmappedVLANError) Error() string {
	return fmt.Sprintf("client %s is on VLAN %d which has no segment mapping", e.MAC, e.VLAN)
}

// BuildRows joins each client with its segment via the VLAN mapping.
// Clients without a VLAN assignment are skipped; skipped is how many were.
// A client whose VLAN is missing from the mapping fails the whole build,
// so a half-mapped run never produces a file.
func BuildRows(clients []meraki.NetworkClient, mapping map[int]string) (rows []MigrationRow, skipped int, err error) {
	for _, c := range clients {
		if !c.HasVLAN() {
			skipped++
			continue
		}
		segment, ok := mapping[*c.VLAN]
		if !ok {
			return nil, 0, &UnmappedVLANError{MAC: c.MAC, VLAN: *c.VLAN}
		}
		mac := c.MAC
		if clean, err := macaddr.NormalizeExactMac(mac); err == nil {
			mac = macaddr.FormatMacColon(clean)
		}
		rows = append(rows, MigrationRow{
			MAC:     mac,
			Segment: segment,
			IP:      c.IP,
		})
	}
	return rows, skipped, nil
}

// WriteCSV writes the import header and one row per client.
// Lock to Port, Site, Building and Floor are left for the operator to fill
// in after import; Static IP and Passive IP default to "No".
func WriteCSV(w io.Writer, rows []MigrationRow) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(csvHeader); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			row.MAC,
			row.Segment,
			"", // Lock to Port
			"", // Site
			"", // Building
			"", // Floor
			"Allow",
			DefaultDescription,
			"No", // Static IP
			row.IP,
			"No", // Passive IP
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteText writes an aligned preview table of the rows, used by --preview
// before the CSV is written.
func WriteText(w io.Writer, rows []MigrationRow) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No clients to migrate")
		return
	}

	headers := []string{"MAC", "Segment", "IP"}
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		widths[0] = max(widths[0], len(row.MAC))
		widths[1] = max(widths[1], len(row.Segment))
		widths[2] = max(widths[2], len(row.IP))
	}

	separator := strings.Repeat("-", sum(widths)+len(widths)*3-1)
	fmt.Fprintln(w, separator)
	fmt.Fprintln(w, formatRow(headers, widths))
	fmt.Fprintln(w, separator)
	for _, row := range rows {
		fmt.Fprintln(w, formatRow([]string{row.MAC, row.Segment, row.IP}, widths))
	}
	fmt.Fprintln(w, separator)
}

// formatRow formats a row of values with column widths for text table output.
func formatRow(values []string, widths []int) string {
	var parts []string
	for i, v := range values {
		parts = append(parts, fmt.Sprintf("%-*s", widths[i], v))
	}
	return strings.Join(parts, " | ")
}

// sum calculates the sum of integers in a slice.
func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}

// max returns the maximum of two integers.
func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
