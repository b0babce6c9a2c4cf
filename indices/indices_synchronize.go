package indices

import (
	"context"
	"fmt"
	"sync"
	"taskhub/client/es"
	"taskhub/domain"
	"taskhub/event"
	"taskhub/persistence"

	"github.com/sirupsen/logrus"
)

var (
	IndexEventHandlerName = "searchIndexer"

	lock    sync.Mutex
	running bool

	IndicesFullSyncFunc    = IndicesFullSync
	ScheduleNewSyncRunFunc = ScheduleNewSyncRun
	LoadDocumentsFunc      = LoadDocuments
)

// ScheduleNewSyncRun starts a full sync in background, it returns false when a run is in progress.
func ScheduleNewSyncRun() (bool, error) {
	lock.Lock()
	if running {
		lock.Unlock()
		return false, nil
	}
	running = true
	lock.Unlock()

	waitRunning := sync.WaitGroup{}
	waitRunning.Add(1)
	go func() {
		waitRunning.Done()
		defer func() {
			lock.Lock()
			running = false
			lock.Unlock()
		}()
		if err := IndicesFullSyncFunc(); err != nil {
			logrus.Warnf("indices fully sync: %v", err)
		}
	}()
	waitRunning.Wait()
	return true, nil
}

var (
	SyncBatchSize = 500
)

func IndicesFullSync() (err error) {
	defer func() {
		if ret := recover(); ret != nil {
			e, ok := ret.(error)
			if ok {
				err = e
			} else {
				err = fmt.Errorf("error on indices full sync: %v", ret)
			}
		}
	}()

	ctx := context.Background()
	for _, index := range []string{ProjectIndexName, TaskIndexName, CollaboratorIndexName} {
		page := 0
		for {
			docs, err := LoadDocumentsFunc(ctx, index, page, SyncBatchSize)
			if err != nil {
				return fmt.Errorf("load %s (page = %d, pageSize = %d): %w", index, page, SyncBatchSize, err)
			}
			if len(docs) == 0 {
				logrus.Infof("indices fully sync: there are no more %s to index", index)
				break
			}
			if err := IndexDocuments(ctx, index, docs); err != nil {
				logrus.Warnf("indices fully sync: error on index %s (page = %d, pageSize = %d): %v", index, page, SyncBatchSize, err)
			}
			page++
		}
	}
	return nil
}

// LoadDocuments reads one page of the records backing index, ordered by id.
func LoadDocuments(ctx context.Context, index string, page, size int) ([]Document, error) {
	db := persistence.ActiveDataSourceManager.GormDB(ctx).Order("id ASC").Offset(page * size).Limit(size)
	var docs []Document
	switch index {
	case ProjectIndexName:
		var records []domain.Project
		if err := db.Find(&records).Error; err != nil {
			return nil, err
		}
		for i := range records {
			r := domain.NewProjectRepresentation(&records[i])
			r.Links = nil
			docs = append(docs, Document{ID: r.ID, Source: r})
		}
	case TaskIndexName:
		var records []domain.Task
		if err := db.Find(&records).Error; err != nil {
			return nil, err
		}
		for i := range records {
			r := domain.NewTaskRepresentation(&records[i])
			r.Links = nil
			docs = append(docs, Document{ID: r.ID, Source: r})
		}
	case CollaboratorIndexName:
		var records []domain.Collaborator
		if err := db.Find(&records).Error; err != nil {
			return nil, err
		}
		for i := range records {
			r := domain.NewCollaboratorRepresentation(&records[i])
			r.Links = nil
			docs = append(docs, Document{ID: r.ID, Source: r})
		}
	default:
		return nil, fmt.Errorf("unknown index '%s'", index)
	}
	return docs, nil
}

// IndexEventHandle keeps the search index in line with committed changes.
func IndexEventHandle(e *event.EventRecord) *event.EventHandleResult {
	index, ok := indexOfSourceType[e.SourceType]
	if !ok || e.EventCategory == event.EventCategoryRelationUpdated {
		return nil
	}

	ctx := context.Background()
	if e.EventCategory == event.EventCategoryDeleted {
		if err := es.DeleteDocumentByIdFunc(ctx, index, e.SourceId); err != nil {
			return &event.EventHandleResult{
				Message:           fmt.Sprintf("delete %s document %s, %v", index, e.SourceId, err),
				HandlerIdentifier: IndexEventHandlerName,
			}
		}
		return &event.EventHandleResult{Success: true, HandlerIdentifier: IndexEventHandlerName}
	}

	if e.Payload == nil {
		return &event.EventHandleResult{
			Message:           fmt.Sprintf("index %s document %s, missing payload", index, e.SourceId),
			HandlerIdentifier: IndexEventHandlerName,
		}
	}
	if err := IndexDocuments(ctx, index, []Document{{ID: e.SourceId, Source: e.Payload}}); err != nil {
		return &event.EventHandleResult{
			Message:           fmt.Sprintf("index %s document %s, %v", index, e.SourceId, err),
			HandlerIdentifier: IndexEventHandlerName,
		}
	}
	return &event.EventHandleResult{Success: true, HandlerIdentifier: IndexEventHandlerName}
}
