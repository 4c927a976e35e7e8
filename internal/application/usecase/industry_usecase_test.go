package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/biztime-api/internal/application/dto"
	"github.com/jhoicas/biztime-api/internal/domain"
)

func TestIndustryCreate_DerivaCode(t *testing.T) {
	_, uc, _ := newCompanyUC(t)
	out, err := uc.Create(context.Background(), dto.CreateIndustryRequest{Name: "Consumer Electronics"})
	require.NoError(t, err)
	assert.Equal(t, &dto.IndustryResponse{Code: "consumer-electronics", Name: "Consumer Electronics"}, out)
}

func TestIndustryCreate_CodeExplicitoInvalido(t *testing.T) {
	_, uc, _ := newCompanyUC(t)
	_, err := uc.Create(context.Background(), dto.CreateIndustryRequest{Code: "Tech/Hardware", Name: "Hardware"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIndustryAddCompany_Errores(t *testing.T) {
	companies, uc, _ := newCompanyUC(t)
	ctx := context.Background()
	_, err := companies.Create(ctx, dto.CreateCompanyRequest{Code: "apple", Name: "Apple"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateIndustryRequest{Code: "tech", Name: "Technology"})
	require.NoError(t, err)

	_, err = uc.AddCompany(ctx, "nope", "apple")
	assert.ErrorIs(t, err, domain.ErrNotFound, "industria inexistente")

	_, err = uc.AddCompany(ctx, "tech", "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound, "empresa inexistente")

	_, err = uc.AddCompany(ctx, "tech", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	link, err := uc.AddCompany(ctx, "tech", "apple")
	require.NoError(t, err)
	assert.Equal(t, &dto.CompanyIndustryResponse{Industry: "tech", Company: "apple"}, link)

	_, err = uc.AddCompany(ctx, "tech", "apple")
	assert.ErrorIs(t, err, domain.ErrConflict, "vínculo repetido")
}

func TestIndustryList_IncluyeIndustriasSinEmpresas(t *testing.T) {
	companies, uc, _ := newCompanyUC(t)
	ctx := context.Background()
	_, err := companies.Create(ctx, dto.CreateCompanyRequest{Code: "apple", Name: "Apple"})
	require.NoError(t, err)
	_, err = companies.Create(ctx, dto.CreateCompanyRequest{Code: "ibm", Name: "IBM"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateIndustryRequest{Code: "tech", Name: "Technology"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateIndustryRequest{Code: "acct", Name: "Accounting"})
	require.NoError(t, err)
	_, err = uc.AddCompany(ctx, "tech", "ibm")
	require.NoError(t, err)
	_, err = uc.AddCompany(ctx, "tech", "apple")
	require.NoError(t, err)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)

	assert.Equal(t, "Accounting", list[0].Industry)
	assert.Nil(t, list[0].Company)
	assert.Equal(t, "Technology", list[1].Industry)
	assert.Equal(t, "apple", *list[1].Company)
	assert.Equal(t, "ibm", *list[2].Company)
}

func TestIndustryGetYRemoveCompany(t *testing.T) {
	companies, uc, _ := newCompanyUC(t)
	ctx := context.Background()
	_, err := companies.Create(ctx, dto.CreateCompanyRequest{Code: "apple", Name: "Apple"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateIndustryRequest{Code: "tech", Name: "Technology"})
	require.NoError(t, err)
	_, err = uc.AddCompany(ctx, "tech", "apple")
	require.NoError(t, err)

	detail, err := uc.Get(ctx, "tech")
	require.NoError(t, err)
	assert.Equal(t, []string{"apple"}, detail.Companies)

	require.NoError(t, uc.RemoveCompany(ctx, "tech", "apple"))
	assert.ErrorIs(t, uc.RemoveCompany(ctx, "tech", "apple"), domain.ErrNotFound)

	detail, err = uc.Get(ctx, "tech")
	require.NoError(t, err)
	assert.Empty(t, detail.Companies)

	_, err = uc.Get(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
