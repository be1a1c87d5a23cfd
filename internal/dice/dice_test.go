package dice

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type DiceTestSuite struct {
	suite.Suite
	roller *DefaultRoller
}

func (s *DiceTestSuite) SetupTest() {
	s.roller = New(&Config{Seed: 42})
}

func (s *DiceTestSuite) TestRollStaysInRange() {
	for i := 0; i < 500; i++ {
		v := s.roller.Roll(6)
		s.GreaterOrEqual(v, 1)
		s.LessOrEqual(v, 6)
	}
}

func (s *DiceTestSuite) TestRollWithNoSides() {
	s.Equal(1, s.roller.Roll(0))
}

func (s *DiceTestSuite) TestPick() {
	s.Equal(-1, Pick(s.roller, 0))
	s.Equal(0, Pick(s.roller, 1))
	for i := 0; i < 100; i++ {
		idx := Pick(s.roller, 3)
		s.GreaterOrEqual(idx, 0)
		s.Less(idx, 3)
	}
}

func TestDiceTestSuite(t *testing.T) {
	suite.Run(t, new(DiceTestSuite))
}
