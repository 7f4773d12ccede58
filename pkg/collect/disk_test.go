package collect

import (
	"reflect"
	"testing"
)

const sampleLsblk = `{
   "blockdevices": [
      {"name":"nvme0n1", "size":"953.9G", "type":"disk", "rota":false, "model":"Samsung SSD 980 PRO 1TB", "serial":"S5GXNF0R123456", "tran":"nvme", "rev":null, "vendor":null},
      {"name":"sda", "size":"3.6T", "type":"disk", "rota":true, "model":"WDC WD40EFRX-68N", "serial":"WD-WCC7K1234567", "tran":"sata", "rev":"0A82", "vendor":"ATA     "},
      {"name":"loop0", "size":"63.9M", "type":"loop", "rota":false, "model":null, "serial":null, "tran":null, "rev":null, "vendor":null}
   ]
}`

// Older lsblk versions emit ROTA as the strings "0"/"1" rather than booleans.
const sampleLsblkStringRota = `{
   "blockdevices": [
      {"name":"sda", "size":"465.8G", "type":"disk", "rota":"1", "model":"ST500DM002", "serial":"Z6E1234", "tran":"sata", "vendor":"ATA"}
   ]
}`

func TestParseLsblkJSON(t *testing.T) {
	rows, err := parseLsblkJSON(sampleLsblk)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2 (loop device must be skipped)", len(rows))
	}

	want := []string{"nvme0n1", "953.9G", "SSD", "N/A", "Samsung SSD 980 PRO 1TB", "S5GXNF0R123456", "NVME"}
	if !reflect.DeepEqual(rows[0], want) {
		t.Errorf("row 0 = %v, want %v", rows[0], want)
	}
	if rows[1][2] != "HDD" {
		t.Errorf("rotational disk type = %q, want HDD", rows[1][2])
	}
}

func TestParseLsblkJSONStringRota(t *testing.T) {
	rows, err := parseLsblkJSON(sampleLsblkStringRota)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(rows) != 1 || rows[0][2] != "HDD" {
		t.Errorf("rows = %v, want one HDD row", rows)
	}
}

const sampleDiskDrive = `[
  {
    "DeviceID": "\\\\.\\PHYSICALDRIVE0",
    "Model": "Samsung SSD 970 EVO Plus 1TB",
    "Size": 1000202273280,
    "MediaType": "Fixed hard disk media",
    "InterfaceType": "SCSI",
    "SerialNumber": "0025_38B1_1234_5678.",
    "FirmwareRevision": "2B2QEXM7",
    "Partitions": 3,
    "Status": "OK"
  }
]`

func TestParseDiskDriveJSON(t *testing.T) {
	rows, err := parseDiskDriveJSON(sampleDiskDrive)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0][1] != "Samsung SSD 970 EVO Plus 1TB" {
		t.Errorf("model = %q", rows[0][1])
	}
	if rows[0][6] != "3" {
		t.Errorf("partitions = %q, want 3", rows[0][6])
	}
}

func TestPartitionSuffix(t *testing.T) {
	tests := []struct {
		device string
		want   string
	}{
		{"/dev/sda1", "/dev/sda"},
		{"/dev/sda12", "/dev/sda"},
		{"/dev/nvme0n1p2", "/dev/nvme0n1"},
		{"/dev/mmcblk0p1", "/dev/mmcblk0"},
		{"/dev/mapper/vg-root", "/dev/mapper/vg-root"},
	}
	for _, tt := range tests {
		if got := partitionSuffix.ReplaceAllString(tt.device, ""); got != tt.want {
			t.Errorf("strip(%q) = %q, want %q", tt.device, got, tt.want)
		}
	}
}

func TestIsVirtualFS(t *testing.T) {
	virtual := []string{"tmpfs", "proc", "sysfs", "overlay", "squashfs", "devpts"}
	for _, fs := range virtual {
		if !isVirtualFS(fs) {
			t.Errorf("isVirtualFS(%q) = false, want true", fs)
		}
	}
	real := []string{"ext4", "xfs", "btrfs", "ntfs", "apfs", "zfs"}
	for _, fs := range real {
		if isVirtualFS(fs) {
			t.Errorf("isVirtualFS(%q) = true, want false", fs)
		}
	}
}
