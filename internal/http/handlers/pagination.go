package handlers

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/moodtracker-backend/internal/data/repos"
	"github.com/yungbote/moodtracker-backend/internal/platform/apierr"
)

// pageRequest reads page (0-based), size and repeated sort=field,dir
// parameters. Clamping is left to the repo.
func pageRequest(c *gin.Context) (repos.PageRequest, error) {
	page, err := intQuery(c, "page", 0)
	if err != nil {
		return repos.PageRequest{}, err
	}
	size, err := intQuery(c, "size", 0)
	if err != nil {
		return repos.PageRequest{}, err
	}
	req := repos.PageRequest{Page: page, Size: size}
	for _, raw := range c.QueryArray("sort") {
		parts := strings.Split(raw, ",")
		field := strings.TrimSpace(parts[0])
		if field == "" {
			continue
		}
		s := repos.Sort{Field: field}
		if len(parts) > 1 {
			switch strings.ToLower(strings.TrimSpace(parts[1])) {
			case "desc":
				s.Desc = true
			case "asc", "":
			default:
				return repos.PageRequest{}, apierr.BadRequest("invalid_request", fmt.Errorf("invalid sort direction in %q", raw))
			}
		}
		req.Sort = append(req.Sort, s)
	}
	return req.Normalize(), nil
}

// setPaginationHeaders writes X-Total-Count and an RFC 5988 Link header with
// next, prev, last and first relations.
func setPaginationHeaders(c *gin.Context, page repos.PageRequest, total int64) {
	c.Header("X-Total-Count", strconv.FormatInt(total, 10))

	lastPage := 0
	if page.Size > 0 && total > 0 {
		lastPage = int((total - 1) / int64(page.Size))
	}
	link := func(p int, rel string) string {
		u := url.URL{Path: c.Request.URL.Path}
		q := c.Request.URL.Query()
		q.Set("page", strconv.Itoa(p))
		q.Set("size", strconv.Itoa(page.Size))
		u.RawQuery = q.Encode()
		return fmt.Sprintf("<%s>; rel=\"%s\"", u.String(), rel)
	}

	links := make([]string, 0, 4)
	if page.Page < lastPage {
		links = append(links, link(page.Page+1, "next"))
	}
	if page.Page > 0 {
		links = append(links, link(page.Page-1, "prev"))
	}
	links = append(links, link(lastPage, "last"), link(0, "first"))
	c.Header("Link", strings.Join(links, ","))
}
