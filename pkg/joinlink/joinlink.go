// Package joinlink builds and parses group join deep links.
//
// A join link is an opaque URL whose final path segment is the group id,
// e.g. https://example.com/join/abc123. QR codes already in circulation
// embed links in this shape, so the extraction rule (take everything after
// the last '/') must not change.
package joinlink

import "strings"

// Build returns the join link for a group under the given public base URL.
func Build(baseURL, groupID string) string {
	return strings.TrimSuffix(baseURL, "/") + "/join/" + groupID
}

// GroupID extracts the group id from a join link: the last '/'-delimited
// segment. A bare id (no slashes) is returned unchanged.
func GroupID(link string) string {
	if i := strings.LastIndex(link, "/"); i >= 0 {
		return link[i+1:]
	}
	return link
}
