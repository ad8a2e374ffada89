package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/holdco_books/internal/apperrors"
	"github.com/SscSPs/holdco_books/internal/core/domain"
	portssvc "github.com/SscSPs/holdco_books/internal/core/ports/services"
	"github.com/SscSPs/holdco_books/internal/core/services"
)

// --- Test Suite Setup ---

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo     *MockAccountRepository
	mockEntities *MockEntityReader
	service      portssvc.AccountSvcFacade
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.mockEntities = new(MockEntityReader)
	suite.service = services.NewAccountService(suite.mockRepo, services.WithAccountEntityReader(suite.mockEntities))
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}

// --- Test Cases ---

func (suite *AccountServiceTestSuite) TestGetAccount_Success() {
	ctx := context.Background()
	expected := &domain.Account{AccountID: "acc-1", EntityID: "ent-1", AccountNumber: "10110", Name: "Cash"}
	suite.mockRepo.On("FindAccountByID", ctx, "ent-1", "acc-1").Return(expected, nil).Once()

	acc, err := suite.service.GetAccount(ctx, "ent-1", "acc-1")

	suite.NoError(err)
	suite.Equal(expected, acc)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetAccount_NotFound() {
	ctx := context.Background()
	suite.mockRepo.On("FindAccountByID", ctx, "ent-1", "missing").Return(nil, apperrors.ErrNotFound).Once()

	acc, err := suite.service.GetAccount(ctx, "ent-1", "missing")

	suite.Nil(acc)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestGetAccountsByIDs_NamesMissingAccount() {
	ctx := context.Background()
	found := map[string]domain.Account{"acc-1": {AccountID: "acc-1"}}
	suite.mockRepo.On("FindAccountsByIDs", ctx, "ent-1", []string{"acc-1", "acc-2"}).Return(found, nil).Once()

	_, err := suite.service.GetAccountsByIDs(ctx, "ent-1", []string{"acc-1", "acc-2"})

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Contains(err.Error(), "acc-2")
}

func (suite *AccountServiceTestSuite) TestListAccounts_EmptyIsNotNil() {
	ctx := context.Background()
	suite.mockRepo.On("ListAccounts", ctx, "ent-1", true).Return(nil, nil).Once()

	accounts, err := suite.service.ListAccounts(ctx, "ent-1", true)

	suite.NoError(err)
	suite.NotNil(accounts)
	suite.Empty(accounts)
}

func (suite *AccountServiceTestSuite) TestListAccounts_RepoError() {
	ctx := context.Background()
	repoErr := errors.New("connection reset")
	suite.mockRepo.On("ListAccounts", ctx, "ent-1", false).Return(nil, repoErr).Once()

	_, err := suite.service.ListAccounts(ctx, "ent-1", false)

	suite.ErrorIs(err, repoErr)
}

func (suite *AccountServiceTestSuite) TestSeedAccounts_FillsDefaults() {
	ctx := context.Background()
	suite.mockEntities.On("FindEntityByID", ctx, "ent-1").Return(&domain.Entity{EntityID: "ent-1", IsActive: true}, nil).Once()
	suite.mockRepo.On("UpsertAccounts", ctx, mock.MatchedBy(func(accs []domain.Account) bool {
		if len(accs) != 2 {
			return false
		}
		return accs[0].AccountID != "" &&
			accs[0].EntityID == "ent-1" &&
			accs[0].NormalBalance == domain.NormalDebit &&
			accs[1].NormalBalance == domain.NormalCredit &&
			accs[0].CreatedBy == "admin" &&
			accs[0].AccountNumber == "10110"
	})).Return(2, nil).Once()

	n, err := suite.service.SeedAccounts(ctx, "ent-1", []domain.Account{
		{AccountNumber: " 10110 ", Name: "Cash", AccountType: domain.Asset, AllowPosting: true, IsActive: true},
		{AccountNumber: "20100", Name: "Accounts Payable", AccountType: domain.Liability, AllowPosting: true, IsActive: true},
	}, "admin")

	suite.NoError(err)
	suite.Equal(2, n)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestSeedAccounts_Rejections() {
	ctx := context.Background()
	suite.mockEntities.On("FindEntityByID", ctx, "ent-1").Return(&domain.Entity{EntityID: "ent-1", IsActive: true}, nil)

	tests := []struct {
		name     string
		accounts []domain.Account
		want     error
	}{
		{"missing name", []domain.Account{{AccountNumber: "10110", AccountType: domain.Asset}}, apperrors.ErrValidation},
		{"unknown type", []domain.Account{{AccountNumber: "10110", Name: "Cash", AccountType: "Contra"}}, apperrors.ErrValidation},
		{"duplicate number", []domain.Account{
			{AccountNumber: "10110", Name: "Cash", AccountType: domain.Asset},
			{AccountNumber: "10110", Name: "Cash again", AccountType: domain.Asset},
		}, apperrors.ErrDuplicate},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, err := suite.service.SeedAccounts(ctx, "ent-1", tt.accounts, "admin")
			suite.ErrorIs(err, tt.want)
		})
	}
	suite.mockRepo.AssertNotCalled(suite.T(), "UpsertAccounts", mock.Anything, mock.Anything)
}

func TestSeedAccounts_InactiveEntity(t *testing.T) {
	repo := new(MockAccountRepository)
	entities := new(MockEntityReader)
	entities.On("FindEntityByID", mock.Anything, "ent-closed").Return(&domain.Entity{EntityID: "ent-closed"}, nil)
	svc := services.NewAccountService(repo, services.WithAccountEntityReader(entities))

	_, err := svc.SeedAccounts(context.Background(), "ent-closed", []domain.Account{{AccountNumber: "1", Name: "x", AccountType: domain.Asset}}, "admin")

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	repo.AssertNotCalled(t, "UpsertAccounts", mock.Anything, mock.Anything)
}
