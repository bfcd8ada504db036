package browser

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// Cookie is one entry from a standard cookie-export file.
type Cookie struct {
	Domain  string
	Path    string
	Secure  bool
	Expires int64 // unix seconds, 0 = session cookie
	Name    string
	Value   string
}

// ParseNetscapeCookies reads the tab-separated cookie-export format
// (domain, include-subdomains flag, path, secure, expiry, name, value).
// Comment lines and short lines are skipped.
func ParseNetscapeCookies(r io.Reader) ([]Cookie, error) {
	var cookies []Cookie

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, "\t")
		if len(parts) < 7 {
			continue
		}

		expiry, _ := strconv.ParseInt(parts[4], 10, 64)

		cookies = append(cookies, Cookie{
			Domain:  parts[0],
			Path:    defaultString(parts[2], "/"),
			Secure:  parts[3] == "TRUE",
			Expires: expiry,
			Name:    parts[5],
			Value:   parts[6],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return cookies, nil
}

func defaultString(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
