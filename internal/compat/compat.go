// Package compat checks the local machine against the published system
// requirements for QuickLook.
package compat

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/caioricciuti/quicklook-landing/internal/content"
	"github.com/caioricciuti/quicklook-landing/internal/release"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// Windows 10 version 1903
const minWindowsBuild = 18362

// Status of a single requirement check
type Status string

const (
	StatusOK      Status = "ok"
	StatusFail    Status = "fail"
	StatusUnknown Status = "unknown"
)

// HostInfo is what Probe learns about this machine
type HostInfo struct {
	OS              string
	Platform        string
	PlatformVersion string
	Arch            string
	DiskPath        string
	DiskFree        uint64
	MemoryTotal     uint64
}

// Check is one evaluated requirement
type Check struct {
	Name   string
	Status Status
	Detail string
}

// Report is the outcome of Evaluate
type Report struct {
	Host       HostInfo
	Checks     []Check
	Compatible bool
}

// Probe collects host facts. Missing facts are left zero rather than failing.
func Probe() HostInfo {
	info := HostInfo{
		OS:   runtime.GOOS,
		Arch: runtime.GOARCH,
	}

	if hostInfo, err := host.Info(); err == nil {
		info.Platform = hostInfo.Platform
		info.PlatformVersion = hostInfo.PlatformVersion
	}

	info.DiskPath = diskRoot()
	if usage, err := disk.Usage(info.DiskPath); err == nil {
		info.DiskFree = usage.Free
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		info.MemoryTotal = vm.Total
	}

	return info
}

func diskRoot() string {
	if runtime.GOOS == "windows" {
		if drive := os.Getenv("SystemDrive"); drive != "" {
			return drive + `\`
		}
		return `C:\`
	}
	return "/"
}

// Evaluate compares host facts with the requirements list
func Evaluate(info HostInfo) Report {
	report := Report{Host: info, Compatible: true}

	osCheck := Check{Name: "Operating system"}
	buildCheck := Check{Name: "Windows 10 1903+ / Windows 11"}
	if info.OS != "windows" {
		osCheck.Status = StatusFail
		osCheck.Detail = fmt.Sprintf("QuickLook runs on Windows; this machine runs %s", describeOS(info))
		buildCheck.Status = StatusFail
		buildCheck.Detail = "not applicable"
	} else {
		osCheck.Status = StatusOK
		osCheck.Detail = describeOS(info)
		build, ok := windowsBuild(info.PlatformVersion)
		switch {
		case !ok:
			buildCheck.Status = StatusUnknown
			buildCheck.Detail = "could not read the Windows build number"
		case build >= minWindowsBuild:
			buildCheck.Status = StatusOK
			buildCheck.Detail = fmt.Sprintf("build %d", build)
		default:
			buildCheck.Status = StatusFail
			buildCheck.Detail = fmt.Sprintf("build %d is older than %d (version 1903)", build, minWindowsBuild)
		}
	}

	diskCheck := Check{Name: "Disk space"}
	switch {
	case info.DiskFree == 0:
		diskCheck.Status = StatusUnknown
		diskCheck.Detail = "free space unavailable"
	case info.DiskFree < content.MinDiskBytes:
		diskCheck.Status = StatusFail
		diskCheck.Detail = fmt.Sprintf("%s free, %s needed", release.FormatByteSize(int64(info.DiskFree)), release.FormatByteSize(content.MinDiskBytes))
	default:
		diskCheck.Status = StatusOK
		diskCheck.Detail = fmt.Sprintf("%s free on %s", release.FormatByteSize(int64(info.DiskFree)), info.DiskPath)
	}

	memCheck := Check{Name: "Memory", Status: StatusUnknown, Detail: "total memory unavailable"}
	if info.MemoryTotal > 0 {
		memCheck.Status = StatusOK
		memCheck.Detail = release.FormatByteSize(int64(info.MemoryTotal)) + " installed"
	}

	report.Checks = []Check{osCheck, buildCheck, diskCheck, memCheck}
	for _, c := range report.Checks {
		if c.Status == StatusFail {
			report.Compatible = false
		}
	}
	return report
}

func describeOS(info HostInfo) string {
	parts := []string{info.OS}
	if info.Platform != "" && info.Platform != info.OS {
		parts = append(parts, info.Platform)
	}
	if info.PlatformVersion != "" {
		parts = append(parts, info.PlatformVersion)
	}
	return strings.Join(parts, " ") + " (" + info.Arch + ")"
}

// windowsBuild extracts the build from versions like "10.0.19045 Build 19045"
func windowsBuild(version string) (int, bool) {
	fields := strings.Fields(version)
	if len(fields) == 0 {
		return 0, false
	}
	parts := strings.Split(fields[0], ".")
	if len(parts) < 3 {
		return 0, false
	}
	build, err := strconv.Atoi(parts[2])
	if err != nil {
		return 0, false
	}
	return build, true
}
