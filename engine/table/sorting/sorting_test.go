package sorting

import (
	"testing"
	"time"

	"github.com/compozy/usertable/engine/record"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(id, name, email string, balance int64, day int) record.Record {
	return record.Record{
		ID:           id,
		Name:         name,
		Email:        email,
		Balance:      decimal.NewFromInt(balance),
		RegisteredAt: time.Date(2024, time.January, day, 0, 0, 0, 0, time.UTC),
	}
}

func fixture() []record.Record {
	return []record.Record{
		rec("1", "Emma King", "emma.king@mail.com", 3000, 5),
		rec("2", "Andrew Young", "andrew.young@gmail.com", 1000, 2),
		rec("3", "emma king", "emma.king@yahoo.com", 3000, 5),
		rec("4", "Andrew Young", "andrew.young@hotmail.com", 2000, 9),
		rec("5", "Sarah White", "sarah.white@mail.com", 1000, 1),
	}
}

func TestState_Next(t *testing.T) {
	t.Run("Should cycle asc, desc, none on the same key", func(t *testing.T) {
		s := State{}
		s = s.Next(KeyName)
		assert.Equal(t, State{Key: KeyName, Direction: Ascending}, s)
		s = s.Next(KeyName)
		assert.Equal(t, State{Key: KeyName, Direction: Descending}, s)
		s = s.Next(KeyName)
		assert.False(t, s.Active())
	})

	t.Run("Should reset to ascending on a different key", func(t *testing.T) {
		s := State{Key: KeyName, Direction: Descending}.Next(KeyBalance)
		assert.Equal(t, State{Key: KeyBalance, Direction: Ascending}, s)
	})

	t.Run("Should restore the original order after three requests", func(t *testing.T) {
		records := fixture()
		s := State{}
		for range 3 {
			s = s.Next(KeyEmail)
		}
		assert.Equal(t, records, Order(records, s))
	})
}

func TestOrder(t *testing.T) {
	t.Run("Should keep ties in original order in both directions", func(t *testing.T) {
		records := fixture()
		asc := Order(records, State{Key: KeyBalance, Direction: Ascending})
		assert.Equal(t, []string{"2", "5", "4", "1", "3"}, record.IDs(asc))

		desc := Order(records, State{Key: KeyBalance, Direction: Descending})
		assert.Equal(t, []string{"1", "3", "4", "2", "5"}, record.IDs(desc))
	})

	t.Run("Should compare names case-sensitively by default", func(t *testing.T) {
		ordered := Order(fixture(), State{Key: KeyName, Direction: Ascending})
		assert.Equal(t, []string{"2", "4", "1", "5", "3"}, record.IDs(ordered))
	})

	t.Run("Should fold case when requested", func(t *testing.T) {
		ordered := Order(fixture(), State{Key: KeyName, Direction: Ascending}, WithFoldCase())
		assert.Equal(t, []string{"2", "4", "1", "3", "5"}, record.IDs(ordered))
	})

	t.Run("Should order registrations by instant", func(t *testing.T) {
		ordered := Order(fixture(), State{Key: KeyRegistered, Direction: Descending})
		assert.Equal(t, []string{"4", "1", "3", "2", "5"}, record.IDs(ordered))
	})

	t.Run("Should never mutate the input", func(t *testing.T) {
		records := fixture()
		before := record.IDs(records)
		_ = Order(records, State{Key: KeyEmail, Direction: Descending})
		assert.Equal(t, before, record.IDs(records))
	})

	t.Run("Should return an empty slice for nil input", func(t *testing.T) {
		out := Order(nil, State{Key: KeyName, Direction: Ascending})
		require.NotNil(t, out)
		assert.Empty(t, out)
	})
}

func TestParse(t *testing.T) {
	t.Run("Should parse keys and directions", func(t *testing.T) {
		k, err := ParseKey(" Balance ")
		require.NoError(t, err)
		assert.Equal(t, KeyBalance, k)
		d, err := ParseDirection("desc")
		require.NoError(t, err)
		assert.Equal(t, Descending, d)
	})

	t.Run("Should reject unknown values", func(t *testing.T) {
		_, err := ParseKey("status")
		require.Error(t, err)
		_, err = ParseDirection("sideways")
		require.Error(t, err)
	})
}

func TestIndicator(t *testing.T) {
	t.Run("Should mark only the active column", func(t *testing.T) {
		s := State{Key: KeyName, Direction: Descending}
		assert.Equal(t, "↓", Indicator(s, KeyName))
		assert.Equal(t, "", Indicator(s, KeyEmail))
		assert.Equal(t, "↑", Indicator(State{Key: KeyEmail, Direction: Ascending}, KeyEmail))
		assert.Equal(t, "", Indicator(State{}, KeyEmail))
	})
}
