// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"maps"
	"slices"
	"strings"
)

// LauncherEnvPrefix marks launcher settings; such variables are not passed on
// to the interpreter.
const LauncherEnvPrefix = "QETE_LAUNCHER_"

// BuildEnv returns base without launcher settings and without keys present in
// extra, followed by extra in key order.
func BuildEnv(base []string, extra map[string]string) []string {
	env := make([]string, 0, len(base)+len(extra))
	for _, kv := range base {
		key, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(key, LauncherEnvPrefix) {
			continue
		}
		if _, overridden := extra[key]; overridden {
			continue
		}
		env = append(env, kv)
	}
	for _, k := range slices.Sorted(maps.Keys(extra)) {
		env = append(env, k+"="+extra[k])
	}
	return env
}
