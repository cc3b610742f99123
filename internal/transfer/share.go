package transfer

import (
	"fmt"
	"net/url"
	"strings"
)

// ShareURL builds the link handed to a recipient. The password rides in the
// URL fragment, which is never transmitted to the server by browsers or by
// this client.
func ShareURL(server, fileID, password string) string {
	return fmt.Sprintf("%s/%s#%s", strings.TrimSuffix(server, "/"), fileID, password)
}

// ParseShareTarget splits whatever the user pasted into server, fileid and
// password. A full share URL is self-contained and carries all three;
// "fileid#password" and bare fileids leave the server empty so the caller
// falls back to the configured one. The password comes back empty when the
// input does not carry one.
func ParseShareTarget(raw string) (server, fileID, password string, err error) {
	raw = strings.TrimSpace(raw)

	if strings.Contains(raw, "://") {
		u, err := url.Parse(raw)
		if err != nil {
			return "", "", "", fmt.Errorf("parsing share URL: %w", err)
		}
		if u.Host != "" {
			server = u.Scheme + "://" + u.Host
		}
		fileID = strings.Trim(u.Path, "/")
		if i := strings.LastIndex(fileID, "/"); i >= 0 {
			fileID = fileID[i+1:]
		}
		password = u.Fragment
	} else {
		fileID, password, _ = strings.Cut(raw, "#")
	}

	if fileID == "" {
		return "", "", "", fmt.Errorf("no fileid in %q", raw)
	}
	return server, fileID, password, nil
}
