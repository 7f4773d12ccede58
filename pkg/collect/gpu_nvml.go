//go:build linux && cgo

package collect

import (
	"fmt"

	"github.com/NVIDIA/go-nvml/pkg/nvml"
)

// nvmlAvailable reports whether the NVIDIA management library can be loaded
// and initialized on this host.
func nvmlAvailable() bool {
	if ret := nvml.Init(); ret != nvml.SUCCESS {
		return false
	}
	defer nvml.Shutdown()
	count, ret := nvml.DeviceGetCount()
	return ret == nvml.SUCCESS && count > 0
}

// nvmlDevices enumerates every GPU visible to NVML. Fields a device does not
// report are left at their zero value rather than failing the enumeration.
func nvmlDevices() ([]nvmlDevice, error) {
	if ret := nvml.Init(); ret != nvml.SUCCESS {
		return nil, fmt.Errorf("nvml init: %s", nvml.ErrorString(ret))
	}
	defer nvml.Shutdown()

	count, ret := nvml.DeviceGetCount()
	if ret != nvml.SUCCESS {
		return nil, fmt.Errorf("nvml device count: %s", nvml.ErrorString(ret))
	}

	driver, _ := nvml.SystemGetDriverVersion()

	devices := make([]nvmlDevice, 0, count)
	for i := 0; i < count; i++ {
		handle, ret := nvml.DeviceGetHandleByIndex(i)
		if ret != nvml.SUCCESS {
			continue
		}

		d := nvmlDevice{Index: i, Driver: driver}
		if name, ret := handle.GetName(); ret == nvml.SUCCESS {
			d.Name = name
		}
		if memInfo, ret := handle.GetMemoryInfo(); ret == nvml.SUCCESS {
			d.MemoryTotal = memInfo.Total
			d.MemoryUsed = memInfo.Used
			d.MemoryFree = memInfo.Free
		}
		if temp, ret := handle.GetTemperature(nvml.TEMPERATURE_GPU); ret == nvml.SUCCESS {
			d.Temperature = float64(temp)
		}
		if util, ret := handle.GetUtilizationRates(); ret == nvml.SUCCESS {
			d.Utilization = float64(util.Gpu)
			d.MemUtilization = float64(util.Memory)
		}
		devices = append(devices, d)
	}
	return devices, nil
}
