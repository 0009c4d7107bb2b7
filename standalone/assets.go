package standalone

import (
	"bufio"
	"bytes"
	_ "embed"
	"strings"

	"github.com/user-none/padnav/standalone/screens"
)

//go:embed assets/contributors.txt
var contributorsData []byte

// bundledContributors returns the contributor list shipped with the binary.
// It is shown until the online list arrives, and instead of it when offline.
func bundledContributors() []screens.Contributor {
	return parseContributors(contributorsData)
}

// parseContributors reads "login;avatar;profile" lines. Blank lines and
// lines starting with '#' are skipped, as are lines without a login.
func parseContributors(data []byte) []screens.Contributor {
	var out []screens.Contributor
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, ";")
		login := strings.TrimSpace(fields[0])
		if login == "" {
			continue
		}
		c := screens.Contributor{Login: login}
		if len(fields) > 2 {
			c.URL = strings.TrimSpace(fields[2])
		}
		out = append(out, c)
	}
	return out
}
