package inmem

import (
	"sort"

	"github.com/trezcool/darasa/core/fee"
)

func (s *Store) QueryAllFees() ([]fee.Fee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fees := make([]fee.Fee, len(s.fees))
	copy(fees, s.fees)
	for i := range fees {
		s.joinStudentLocked(&fees[i])
	}
	sort.Slice(fees, func(i, j int) bool {
		if fees[i].Status != fees[j].Status {
			return fees[i].Status > fees[j].Status
		}
		return fees[i].DueDate.Before(fees[j].DueDate)
	})
	return fees, nil
}

func (s *Store) joinStudentLocked(f *fee.Fee) {
	for _, st := range s.students {
		if st.ID == f.StudentID {
			f.StudentName = st.Name
			f.Class = st.Class
			return
		}
	}
}

func (s *Store) GetFeeByID(id int) (fee.Fee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, f := range s.fees {
		if f.ID == id {
			s.joinStudentLocked(&f)
			return f, nil
		}
	}
	return fee.Fee{}, fee.ErrNotFound
}

func (s *Store) UpdateFeePayment(id int, paid, pending float64, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, f := range s.fees {
		if f.ID == id {
			s.fees[i].PaidAmount = paid
			s.fees[i].PendingAmount = pending
			s.fees[i].Status = status
			return nil
		}
	}
	return fee.ErrNotFound
}

func (s *Store) CountUnpaid() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var count int
	for _, f := range s.fees {
		if f.Status == fee.StatusPending || f.Status == fee.StatusOverdue {
			count++
		}
	}
	return count, nil
}
