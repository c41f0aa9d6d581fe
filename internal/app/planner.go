package app

import (
	"fmt"
	"path/filepath"

	"memorg/internal/config"
	"memorg/internal/domain"
)

// Planner computes collision-free destinations under the output root.
// It is consulted synchronously by the single worker goroutine; the
// claimed registry is append-only for the lifetime of one run.
type Planner struct {
	FS   FileSystem
	Tags config.TagPolicy

	// claimed maps destination paths handed out during this run to the
	// source that claimed them, so two entries planned before either is
	// copied can never collide.
	claimed map[string]string
}

// Plan decides where entry's file lives given its resolved date. When
// the destination already holds the same content (a re-run), the result
// is marked AlreadyPlaced instead of inventing a duplicate name.
func (p *Planner) Plan(root string, date domain.ResolvedDate, entry domain.MediaEntry) (domain.Placement, error) {
	if p.claimed == nil {
		p.claimed = make(map[string]string)
	}

	dir := filepath.Join(root, date.Year(), date.Month())
	base := date.Day() + "_" + p.tagFor(entry.Role)
	ext := entry.Ext()

	for n := 0; ; n++ {
		name := base
		if n > 0 {
			name = fmt.Sprintf("%s_%d", base, n)
		}
		name += ext

		target := filepath.Join(dir, name)

		if owner, taken := p.claimed[target]; taken {
			if owner != entry.SourcePath {
				continue
			}
			// The registry alone is not proof the file landed; the
			// earlier copy may have failed after the name was claimed.
			exists, err := p.FS.Exists(target)
			if err != nil {
				return domain.Placement{}, err
			}
			if exists {
				return domain.Placement{Directory: dir, FileName: name, AlreadyPlaced: true}, nil
			}
			return domain.Placement{Directory: dir, FileName: name}, nil
		}

		exists, err := p.FS.Exists(target)
		if err != nil {
			return domain.Placement{}, err
		}
		if exists {
			same, err := p.FS.SameContent(entry.SourcePath, target)
			if err != nil {
				return domain.Placement{}, err
			}
			if same {
				p.claimed[target] = entry.SourcePath
				return domain.Placement{Directory: dir, FileName: name, AlreadyPlaced: true}, nil
			}
			continue
		}

		p.claimed[target] = entry.SourcePath
		return domain.Placement{Directory: dir, FileName: name}, nil
	}
}

func (p *Planner) tagFor(role domain.Role) string {
	tags := p.Tags
	if tags.Primary == "" {
		tags = config.DefaultTagPolicy()
	}
	if role == domain.RoleClip {
		return tags.Clip
	}
	return tags.Primary
}
