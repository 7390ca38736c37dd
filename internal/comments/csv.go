package comments

import (
	"encoding/csv"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// CSVHeader is the fixed export column order.
var CSVHeader = []string{
	"commentId",
	"authorDisplayName",
	"authorProfileImageUrl",
	"authorChannelUrl",
	"textOriginal",
	"likeCount",
	"publishedAt",
	"updatedAt",
	"parentId",
	"isReply",
}

var filenameStripPattern = regexp.MustCompile(`[^\w\s-]`)

// WriteCSV writes the records as CSV with the fixed header, one row per
// record, in sequence order.
func WriteCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(CSVHeader); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			r.CommentID,
			r.AuthorDisplayName,
			r.AuthorProfileImageURL,
			r.AuthorChannelURL,
			r.TextOriginal,
			strconv.FormatInt(r.LikeCount, 10),
			r.PublishedAt,
			r.UpdatedAt,
			r.ParentID,
			strconv.FormatBool(r.IsReply),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ExportFilename derives the CSV filename from the video title: strips
// characters outside word/space/hyphen, trims, turns spaces into
// underscores and appends "_comments_<YYYYMMDD>.csv".
func ExportFilename(videoTitle string, now time.Time) string {
	clean := filenameStripPattern.ReplaceAllString(videoTitle, "")
	clean = strings.TrimSpace(clean)
	clean = strings.ReplaceAll(clean, " ", "_")
	return clean + "_comments_" + now.Format("20060102") + ".csv"
}
