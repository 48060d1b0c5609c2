package configfile

import (
	"errors"

	"github.com/MrSnakeDoc/golink/internal/domain"
)

// ErrNothingToMerge aborts a merge whose links all exist already, so the
// file is left untouched.
var ErrNothingToMerge = errors.New("all links already exist")

// MergeResult counts what a merge changed.
type MergeResult struct {
	Added     int
	Skipped   int
	NewGroups int
}

// MergeMutation appends imported groups. Links join the group with the
// same name, or a new group at the end; a link whose URL is already in
// that group is skipped. res is filled in when the mutation runs.
func MergeMutation(groups []domain.Group, res *MergeResult) Mutation {
	return func(cfg *domain.Config) error {
		*res = MergeResult{}

		for _, imported := range groups {
			gi := cfg.FindGroup(imported.Name)
			if gi < 0 {
				cfg.Groups = append(cfg.Groups, domain.Group{
					Name:  imported.Name,
					Title: imported.Title,
					Icon:  imported.Icon,
				})
				gi = len(cfg.Groups) - 1
				res.NewGroups++
			}

			for _, link := range imported.Links {
				if cfg.Groups[gi].FindLink(link.URL) >= 0 {
					res.Skipped++
					continue
				}
				cfg.Groups[gi].Links = append(cfg.Groups[gi].Links, link)
				res.Added++
			}
		}

		if res.Added == 0 {
			return ErrNothingToMerge
		}
		return nil
	}
}
