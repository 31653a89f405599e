// Package telegraph is a client for the Telegraph publishing API
// (https://telegra.ph).
//
// It covers the full account/page/views surface plus the telegra.ph
// file upload endpoint:
//
//   - Account management (createAccount, editAccountInfo,
//     getAccountInfo, revokeAccessToken)
//   - Page publishing (createPage, editPage, getPage, getPageList)
//   - View analytics (getViews) with year/month/day/hour windows
//   - Single and batch file upload with best-effort progress reporting
//   - Markdown and HTML conversion into Telegraph's content node model
//
// Page content is an ordered sequence of Node values, each either raw
// text or an element restricted to Telegraph's allowed tag set.
// ContentFromMarkdown converts Markdown into that model; constructs the
// platform cannot represent degrade instead of failing:
//
//	# heading        → h3
//	## heading       → h4
//	###, ####        → p > strong
//	#####, ######    → p > em
//	code fence       → pre > code
//	image            → figure > img (+figcaption from the title);
//	                   images inside running text stay inline as img
//	raw HTML         → sanitized: unknown tags unwrapped, children kept
//
// Every client method issues at most one HTTP request and performs no
// retries; remote errors surface as *APIError so callers can branch on
// the error kind (flood wait, invalid token, page not found). Local
// pre-flight failures surface as *ValidationError before any network
// I/O. A Client is safe for concurrent use.
//
// No Telegraph-specific wire library is used — the client talks to the
// API via raw net/http + encoding/json.
package telegraph
