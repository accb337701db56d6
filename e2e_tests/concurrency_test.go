package e2etests

import (
	"context"
	"sort"
	"sync"

	"github.com/csrgxtu/pydb"
)

func (s *TestSuite) TestConcurrency() {
	var (
		ctx        = context.Background()
		numWorkers = 20
		users      = s.users(1000)
		wg         = sync.WaitGroup{}
		errs       = make(chan error, len(users))
		work       = make(chan pydb.Row)
	)

	for range numWorkers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for aUser := range work {
				if err := s.db.Insert(ctx, aUser); err != nil {
					errs <- err
				}
			}
		}()
	}

	for _, aUser := range users {
		work <- aUser
	}
	close(work)
	wg.Wait()
	close(errs)

	for err := range errs {
		s.Require().NoError(err)
	}

	s.Equal(len(users), s.db.NumRows())

	s.Run("Concurrently scan the table", func() {
		wg := sync.WaitGroup{}
		results := make([][]pydb.Row, numWorkers)

		for i := range numWorkers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				rows, err := s.db.Scan(ctx).All(ctx)
				if err == nil {
					results[i] = rows
				}
			}()
		}
		wg.Wait()

		for _, rows := range results {
			s.Len(rows, len(users))
		}
	})

	s.Run("Reinitialise to force unmarshaling from disk", func() {
		s.reopen()

		rows := s.allRows()
		sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
		s.Equal(users, rows)
	})
}
