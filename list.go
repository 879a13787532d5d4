package serial

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// serialPattern matches device names that are real serial endpoints.
var serialPattern = regexp.MustCompile(`^tty(USB|ACM|AMA|S|mxc|O|SAC|THS)\d+$`)

// excludePatterns filters out virtual terminals and pseudo-terminals.
var excludePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^tty\d+$`),
	regexp.MustCompile(`^console$`),
	regexp.MustCompile(`^ptmx$`),
	regexp.MustCompile(`^pty.*$`),
	regexp.MustCompile(`^pts/.*$`),
}

// ListPorts returns the available serial ports on the system, sorted by
// path. An empty slice (not an error) is returned when nothing is attached.
func ListPorts() ([]string, error) {
	entries, err := os.ReadDir("/dev")
	if err != nil {
		return nil, err
	}

	var ports []string
	for _, entry := range entries {
		name := entry.Name()
		if matchesExcludePattern(name) || !serialPattern.MatchString(name) {
			continue
		}

		fullPath := filepath.Join("/dev", name)
		if isCharacterDevice(fullPath) {
			ports = append(ports, fullPath)
		}
	}

	sort.Strings(ports)
	return ports, nil
}

func matchesExcludePattern(name string) bool {
	for _, pattern := range excludePatterns {
		if pattern.MatchString(name) {
			return true
		}
	}
	return false
}

// isCharacterDevice checks if the given path is a character device
func isCharacterDevice(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// PortInfo describes an attached serial device. The USB fields are only
// populated for USB-backed ports where sysfs exposes the metadata.
type PortInfo struct {
	Name         string
	Path         string
	Description  string
	Manufacturer string
	Product      string
	SerialNumber string
	VendorID     string
	ProductID    string
}

// GetPortInfo returns detailed information about a specific port
func GetPortInfo(portPath string) (*PortInfo, error) {
	if !isCharacterDevice(portPath) {
		return nil, ErrDeviceNotFound
	}

	name := filepath.Base(portPath)
	info := &PortInfo{
		Name:        name,
		Path:        portPath,
		Description: getPortDescription(name),
	}

	if strings.HasPrefix(name, "ttyUSB") || strings.HasPrefix(name, "ttyACM") {
		enrichUSBInfo(info)
	}

	return info, nil
}

// getPortDescription provides human-readable descriptions for different port types
func getPortDescription(name string) string {
	switch {
	case strings.HasPrefix(name, "ttyUSB"):
		return "USB Serial Port"
	case strings.HasPrefix(name, "ttyACM"):
		return "USB CDC/ACM Device"
	case strings.HasPrefix(name, "ttyAMA"):
		return "ARM Serial Port"
	case strings.HasPrefix(name, "ttymxc"):
		return "i.MX Serial Port"
	case strings.HasPrefix(name, "ttySAC"):
		return "Samsung Serial Port"
	case strings.HasPrefix(name, "ttyTHS"):
		return "Tegra Serial Port"
	case strings.HasPrefix(name, "ttyO"):
		return "OMAP Serial Port"
	case strings.HasPrefix(name, "ttyS"):
		return "Standard Serial Port"
	default:
		return "Serial Port"
	}
}

// enrichUSBInfo fills in USB metadata from sysfs
func enrichUSBInfo(info *PortInfo) {
	enrichUSBInfoAt(info, "/sys")
}

// enrichUSBInfoAt resolves /sys/class/tty/<name>/device and climbs to the
// USB device directory (the one holding idVendor). Missing files simply
// leave the corresponding fields empty.
func enrichUSBInfoAt(info *PortInfo, sysfsRoot string) {
	deviceLink := filepath.Join(sysfsRoot, "class", "tty", info.Name, "device")
	devicePath, err := filepath.EvalSymlinks(deviceLink)
	if err != nil {
		return
	}

	// The tty device sits below the USB interface directory; the USB
	// device directory is at most a few levels up.
	dir := devicePath
	for range 4 {
		if _, err := os.Stat(filepath.Join(dir, "idVendor")); err == nil {
			info.VendorID = readSysfsFile(filepath.Join(dir, "idVendor"))
			info.ProductID = readSysfsFile(filepath.Join(dir, "idProduct"))
			info.SerialNumber = readSysfsFile(filepath.Join(dir, "serial"))
			info.Manufacturer = readSysfsFile(filepath.Join(dir, "manufacturer"))
			info.Product = readSysfsFile(filepath.Join(dir, "product"))
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}

// readSysfsFile returns the trimmed contents of a sysfs attribute file,
// or an empty string if the file cannot be read.
func readSysfsFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
