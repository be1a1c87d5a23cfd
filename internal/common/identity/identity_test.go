package identity

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type IdentityTestSuite struct {
	suite.Suite
}

func (s *IdentityTestSuite) TestPlainIdentifier() {
	s.Equal("alice", Normalize("  Alice \n"))
}

func (s *IdentityTestSuite) TestEmpty() {
	s.Equal("", Normalize("   "))
}

func (s *IdentityTestSuite) TestURLTakesLastSegment() {
	s.Equal("bob", Normalize("https://portal.example.com/p/Bob"))
	s.Equal("bob", Normalize("https://portal.example.com/p/bob/"))
}

func (s *IdentityTestSuite) TestURLWithoutPath() {
	s.Equal("https://portal.example.com", Normalize("https://portal.example.com"))
}

func (s *IdentityTestSuite) TestNonURLWithColon() {
	s.Equal("player:7", Normalize("PLAYER:7"))
}

func TestIdentityTestSuite(t *testing.T) {
	suite.Run(t, new(IdentityTestSuite))
}
