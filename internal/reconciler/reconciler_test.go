package reconciler_test

import (
	"context"
	"errors"
	"testing"

	"github.com/MichalMitros/listing-migrator/internal/platform/models"
	"github.com/MichalMitros/listing-migrator/internal/platform/models/modelstesting"
	"github.com/MichalMitros/listing-migrator/internal/reconciler"
	"github.com/MichalMitros/listing-migrator/internal/reconciler/mocks"
	"github.com/MichalMitros/listing-migrator/internal/sellapi"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var logger = zerolog.Nop()

func TestUnitCursor(t *testing.T) {
	fulfillment := []models.SourcePolicy{
		fakePolicy(1, models.PolicyTypeFulfillment, "Standard"),
		fakePolicy(2, models.PolicyTypeFulfillment, "Media"),
	}
	payment := []models.SourcePolicy{fakePolicy(3, models.PolicyTypePayment, "PayPal")}
	returns := []models.SourcePolicy{fakePolicy(4, models.PolicyTypeReturn, "30 days")}

	storage := mocks.NewStorage(t)
	storage.On("PoliciesByType", mock.Anything, models.PolicyTypeFulfillment).Return(fulfillment, nil).Once()
	storage.On("PoliciesByType", mock.Anything, models.PolicyTypePayment).Return(payment, nil).Once()
	storage.On("PoliciesByType", mock.Anything, models.PolicyTypeReturn).Return(returns, nil).Once()
	storage.On("SetPolicyTargetID", mock.Anything, 1, "7001").Return(nil).Once()
	storage.On("SetPolicyTargetID", mock.Anything, 2, "7002").Return(nil).Once()
	storage.On("SetPolicyTargetID", mock.Anything, 3, "7003").Return(nil).Once()

	api := mocks.NewPolicyAPI(t)
	api.On("ListPolicies", mock.Anything, models.PolicyTypeFulfillment).Return([]map[string]any{
		{"fulfillmentPolicyId": "7001", "name": "Standard (Migrated)"},
		{"fulfillmentPolicyId": "6000", "name": "Media"},
	}, nil).Once()
	api.On("ListPolicies", mock.Anything, models.PolicyTypePayment).Return([]map[string]any{}, nil).Once()
	api.On("ListPolicies", mock.Anything, models.PolicyTypeReturn).Return([]map[string]any{}, nil).Once()

	api.On("UpdatePolicy", mock.Anything, models.PolicyTypeFulfillment, "7001", mock.MatchedBy(hasName("Standard (Migrated)"))).
		Return(nil).Once()
	api.On("CreatePolicy", mock.Anything, models.PolicyTypeFulfillment, mock.MatchedBy(hasName("Media (Migrated)"))).
		Return("7002", nil).Once()
	api.On("CreatePolicy", mock.Anything, models.PolicyTypePayment, mock.MatchedBy(hasName("PayPal (Migrated)"))).
		Return("", &sellapi.APIError{
			StatusCode: 400,
			Body:       `{"errors":[{"errorId":20400,"message":"Duplicate Policy"}]}`,
			Errors: []sellapi.ErrorDetail{{
				ErrorID:    20400,
				Parameters: []sellapi.ErrorParameter{{Name: "duplicatePolicyId", Value: "7003"}},
			}},
		}).Once()
	api.On("CreatePolicy", mock.Anything, models.PolicyTypeReturn, mock.MatchedBy(hasName("30 days (Migrated)"))).
		Return("", &sellapi.APIError{StatusCode: 400, Body: `{"errors":[{"errorId":20403}]}`}).Once()

	cursor, err := reconciler.NewReconciler(api, storage, &logger).Start(context.TODO())
	require.NoError(t, err, "shouldn't return start error")
	assert.Equal(t, 4, cursor.Remaining(), "should queue all policies")

	next, ok := cursor.Peek()
	require.True(t, ok, "should peek next policy")
	assert.Equal(t, "Standard", next.Name, "should start with fulfillment policies")

	outcomes, err := cursor.Next(context.TODO(), 1)
	require.NoError(t, err, "shouldn't return error")
	require.Len(t, outcomes, 1, "should process one policy")
	assert.Equal(t, reconciler.ActionUpdated, outcomes[0].Action, "should update policy with migrated name")
	assert.Equal(t, "7001", outcomes[0].TargetID, "should use existing target policy")
	assert.Equal(t, 3, cursor.Remaining(), "should have remaining policies")
	assert.Equal(t, 1, cursor.Processed(), "should count processed policies")

	outcomes, err = cursor.All(context.TODO())
	require.NoError(t, err, "shouldn't return error")
	require.Len(t, outcomes, 3, "should process remaining policies")

	assert.Equal(t, reconciler.ActionCreated, outcomes[0].Action, "shouldn't match policy without migrated suffix")
	assert.Equal(t, "7002", outcomes[0].TargetID, "should store created policy id")

	assert.Equal(t, reconciler.ActionDuplicate, outcomes[1].Action, "should recover duplicate policy")
	assert.Equal(t, "7003", outcomes[1].TargetID, "should use duplicate policy id")
	require.NoError(t, outcomes[1].Err, "shouldn't report duplicate as failure")

	assert.Equal(t, reconciler.ActionSkipped, outcomes[2].Action, "should skip failed policy")
	assert.Empty(t, outcomes[2].TargetID, "shouldn't set target id of skipped policy")
	require.Error(t, outcomes[2].Err, "should report failure")

	assert.Zero(t, cursor.Remaining(), "should process all policies")
	_, ok = cursor.Peek()
	assert.False(t, ok, "shouldn't peek after all policies")

	outcomes, err = cursor.Next(context.TODO(), 5)
	require.NoError(t, err, "shouldn't return error")
	assert.Empty(t, outcomes, "shouldn't process anything")
}

func TestUnitCursorDuplicateWithoutID(t *testing.T) {
	storage := mocks.NewStorage(t)
	storage.On("PoliciesByType", mock.Anything, models.PolicyTypeFulfillment).
		Return([]models.SourcePolicy{fakePolicy(1, models.PolicyTypeFulfillment, "Standard")}, nil).Once()
	storage.On("PoliciesByType", mock.Anything, mock.Anything).Return([]models.SourcePolicy{}, nil).Twice()

	api := mocks.NewPolicyAPI(t)
	api.On("ListPolicies", mock.Anything, models.PolicyTypeFulfillment).Return([]map[string]any{}, nil).Once()
	api.On("CreatePolicy", mock.Anything, models.PolicyTypeFulfillment, mock.Anything).
		Return("", &sellapi.APIError{StatusCode: 409, Body: `{}`}).Once()

	cursor, err := reconciler.NewReconciler(api, storage, &logger).Start(context.TODO())
	require.NoError(t, err, "shouldn't return start error")

	outcomes, err := cursor.All(context.TODO())

	require.NoError(t, err, "shouldn't return error")
	require.Len(t, outcomes, 1, "should process policy")
	assert.Equal(t, reconciler.ActionSkipped, outcomes[0].Action, "should skip duplicate without id")
}

func TestUnitCursorErrors(t *testing.T) {
	policy := fakePolicy(1, models.PolicyTypePayment, "PayPal")
	errTest := errors.New("test error")

	tests := map[string]struct {
		setup func(api *mocks.PolicyAPI, storage *mocks.Storage)
	}{
		"list target policies": {
			setup: func(api *mocks.PolicyAPI, _ *mocks.Storage) {
				api.On("ListPolicies", mock.Anything, models.PolicyTypePayment).Return(nil, errTest).Once()
			},
		},
		"save target id": {
			setup: func(api *mocks.PolicyAPI, storage *mocks.Storage) {
				api.On("ListPolicies", mock.Anything, models.PolicyTypePayment).Return([]map[string]any{}, nil).Once()
				api.On("CreatePolicy", mock.Anything, models.PolicyTypePayment, mock.Anything).Return("7001", nil).Once()
				storage.On("SetPolicyTargetID", mock.Anything, 1, "7001").Return(errTest).Once()
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			storage := mocks.NewStorage(t)
			storage.On("PoliciesByType", mock.Anything, models.PolicyTypePayment).
				Return([]models.SourcePolicy{policy}, nil).Once()
			storage.On("PoliciesByType", mock.Anything, mock.Anything).Return([]models.SourcePolicy{}, nil).Twice()

			api := mocks.NewPolicyAPI(t)
			tt.setup(api, storage)

			cursor, err := reconciler.NewReconciler(api, storage, &logger).Start(context.TODO())
			require.NoError(t, err, "shouldn't return start error")

			outcomes, err := cursor.All(context.TODO())

			require.ErrorIs(t, err, errTest, "should return error")
			assert.Empty(t, outcomes, "shouldn't return outcomes")
			assert.Equal(t, 1, cursor.Remaining(), "should keep failed policy pending")
		})
	}
}

func TestUnitStartError(t *testing.T) {
	errTest := errors.New("test error")

	storage := mocks.NewStorage(t)
	storage.On("PoliciesByType", mock.Anything, models.PolicyTypeFulfillment).Return(nil, errTest).Once()

	cursor, err := reconciler.NewReconciler(mocks.NewPolicyAPI(t), storage, &logger).Start(context.TODO())

	require.ErrorIs(t, err, errTest, "should return storage error")
	assert.Nil(t, cursor, "shouldn't return cursor")
}

func fakePolicy(id int, policyType models.PolicyType, name string) models.SourcePolicy {
	return modelstesting.FakePolicy(policyType, func(p *models.SourcePolicy) {
		p.ID = id
		p.Name = name
		p.Payload["name"] = name
	})
}

func hasName(name string) func(map[string]any) bool {
	return func(payload map[string]any) bool {
		return payload["name"] == name
	}
}
