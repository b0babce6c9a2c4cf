package indices

import (
	"context"
	"fmt"
	"taskhub/client/es"
	"taskhub/event"

	"github.com/fundwit/go-commons/types"
	"github.com/sirupsen/logrus"
)

const (
	ProjectIndexName      = "projects"
	TaskIndexName         = "tasks"
	CollaboratorIndexName = "collaborators"
)

var indexOfSourceType = map[string]string{
	event.SourceTypeProject:      ProjectIndexName,
	event.SourceTypeTask:         TaskIndexName,
	event.SourceTypeCollaborator: CollaboratorIndexName,
}

// IsKnownIndex reports whether name is one of the indexes maintained by this service.
func IsKnownIndex(name string) bool {
	for _, index := range indexOfSourceType {
		if index == name {
			return true
		}
	}
	return false
}

type Document struct {
	ID     types.ID
	Source interface{}
}

type BatchActionError map[types.ID]error

func (e BatchActionError) Error() string {
	return fmt.Sprintf("%v", map[types.ID]error(e))
}

func IndexDocuments(ctx context.Context, index string, docs []Document) error {
	errs := BatchActionError{}
	for _, doc := range docs {
		if err := es.IndexFunc(ctx, index, doc.ID, doc.Source); err != nil {
			errs[doc.ID] = err
			logrus.Warnf("index %s document %s: %v", index, doc.ID, err)
		} else {
			logrus.Debugf("index %s document %s successfully", index, doc.ID)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
