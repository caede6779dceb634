package platform

import (
	"fmt"
	"strings"
)

const registryRunKey = `HKCU\Software\Microsoft\Windows\CurrentVersion\Run`

// registryAddArgs are the reg.exe arguments that register execPath under the
// per-user Run key.
func registryAddArgs(appName, execPath string) []string {
	return []string{"add", registryRunKey, "/v", appName, "/t", "REG_SZ", "/d", quoteWindowsPath(execPath), "/f"}
}

func registryDeleteArgs(appName string) []string {
	return []string{"delete", registryRunKey, "/v", appName, "/f"}
}

func quoteWindowsPath(execPath string) string {
	return fmt.Sprintf(`"%s"`, strings.Trim(execPath, `"`))
}
