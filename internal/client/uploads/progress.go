package uploads

import "github.com/dmitrijs2005/gophupload/internal/client/models"

// Project computes the aggregate progress of records.
//
// With nothing in progress it reports no pending work at 100%. Otherwise the
// total is the sum of compressed sizes (original sizes for records still
// compressing) and the uploaded amount sums Transferred over records that
// have a compressed size. An all-zero total yields 0%.
func Project(records []models.Upload) models.Progress {
	pending := false
	for _, u := range records {
		if u.Status == models.StatusProgress {
			pending = true
			break
		}
	}
	if !pending {
		return models.Progress{HasPendingWork: false, Percent: 100}
	}

	var total, uploaded int64
	for _, u := range records {
		if u.CompressedSize == nil {
			total += u.OriginalSize
			continue
		}
		total += *u.CompressedSize
		uploaded += u.Transferred
	}

	return models.Progress{HasPendingWork: true, Percent: models.Percent(uploaded, total)}
}
