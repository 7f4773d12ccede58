package collect

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"gitlab.com/tinyland/lab/hardware-report/pkg/probe"
)

// TestMemoryModulesDenied verifies that a permission-refused dmidecode run
// surfaces the elevated-privileges note rather than the install guidance.
func TestMemoryModulesDenied(t *testing.T) {
	exec := func(ctx context.Context, timeout time.Duration, name string, args ...string) (string, error) {
		if name == "sudo" || name == "dmidecode" {
			return "", fmt.Errorf("%w: dmidecode", probe.ErrDenied)
		}
		return "", probe.ErrNotFound
	}

	snap := Memory(context.Background(), testEnv(exec))
	var note string
	for _, s := range snap.Sections {
		if s.Title == "Module Details" && s.IsNote() {
			note = s.Text
		}
	}
	if !strings.HasPrefix(note, "Requires elevated privileges") {
		t.Errorf("module details note = %q, want the elevated-privileges note", note)
	}
}

const sampleDmidecodeMemory = `# dmidecode 3.5
Getting SMBIOS data from sysfs.
SMBIOS 3.3.0 present.

Handle 0x0040, DMI type 17, 40 bytes
Memory Device
	Array Handle: 0x003E
	Total Width: 64 bits
	Size: 16 GB
	Form Factor: SODIMM
	Locator: DIMM A
	Type: DDR4
	Speed: 3200 MT/s
	Manufacturer: Samsung
	Part Number: M471A2K43EB1-CWE
	Configured Memory Speed: 3200 MT/s

Handle 0x0041, DMI type 17, 40 bytes
Memory Device
	Array Handle: 0x003E
	Size: No Module Installed
	Form Factor: Unknown
	Locator: DIMM B
	Type: Unknown

Handle 0x0042, DMI type 17, 40 bytes
Memory Device
	Array Handle: 0x003E
	Size: 16 GB
	Form Factor: SODIMM
	Locator: DIMM C
	Type: DDR4
	Speed: 3200 MT/s
	Manufacturer: Samsung
	Part Number: M471A2K43EB1-CWE
`

func TestParseDmidecodeMemory(t *testing.T) {
	rows := parseDmidecodeMemory(sampleDmidecodeMemory)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2 (empty slot must be skipped)", len(rows))
	}

	want := []string{"DIMM A", "16 GB", "DDR4", "3200 MT/s", "Samsung", "M471A2K43EB1-CWE"}
	if !reflect.DeepEqual(rows[0], want) {
		t.Errorf("row 0 = %v, want %v", rows[0], want)
	}
	if rows[1][0] != "DIMM C" {
		t.Errorf("row 1 slot = %q, want DIMM C", rows[1][0])
	}
}

func TestParseDmidecodeMemoryEmpty(t *testing.T) {
	if rows := parseDmidecodeMemory("dmidecode: /dev/mem: Permission denied"); len(rows) != 0 {
		t.Errorf("got %d rows from garbage output, want 0", len(rows))
	}
}

func TestSMBIOSMemoryType(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{20, "DDR"},
		{21, "DDR2"},
		{24, "DDR3"},
		{26, "DDR4"},
		{34, "DDR5"},
		{99, "Type 99"},
		{0, "Type 0"},
	}
	for _, tt := range tests {
		if got := smbiosMemoryType(tt.code); got != tt.want {
			t.Errorf("smbiosMemoryType(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

const samplePhysicalMemoryArray = `[
  {
    "BankLabel": "BANK 0",
    "Capacity": 17179869184,
    "SMBIOSMemoryType": 26,
    "Speed": 3200,
    "Manufacturer": "Micron",
    "PartNumber": "16ATF2G64HZ-3G2E1"
  },
  {
    "BankLabel": "BANK 2",
    "Capacity": 17179869184,
    "SMBIOSMemoryType": 26,
    "Speed": 3200,
    "Manufacturer": "Micron",
    "PartNumber": "16ATF2G64HZ-3G2E1"
  }
]`

// PowerShell's ConvertTo-Json emits a bare object when the query matches a
// single instance.
const samplePhysicalMemorySingle = `{
  "BankLabel": "BANK 0",
  "Capacity": 8589934592,
  "SMBIOSMemoryType": 34,
  "Speed": 4800,
  "Manufacturer": "SK Hynix",
  "PartNumber": "HMCG66MEBSA092N"
}`

func TestParsePhysicalMemoryJSON(t *testing.T) {
	rows, err := parsePhysicalMemoryJSON(samplePhysicalMemoryArray)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	want := []string{"BANK 0", "16 GiB", "DDR4", "3200 MT/s", "Micron", "16ATF2G64HZ-3G2E1"}
	if !reflect.DeepEqual(rows[0], want) {
		t.Errorf("row 0 = %v, want %v", rows[0], want)
	}
}

func TestParsePhysicalMemoryJSONSingleObject(t *testing.T) {
	rows, err := parsePhysicalMemoryJSON(samplePhysicalMemorySingle)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0][2] != "DDR5" {
		t.Errorf("type = %q, want DDR5", rows[0][2])
	}
	if rows[0][3] != "4800 MT/s" {
		t.Errorf("speed = %q, want 4800 MT/s", rows[0][3])
	}
}

func TestParsePhysicalMemoryJSONInvalid(t *testing.T) {
	if _, err := parsePhysicalMemoryJSON("not json"); err == nil {
		t.Error("expected an error for malformed output")
	}
}
