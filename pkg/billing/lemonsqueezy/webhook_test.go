package lemonsqueezy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifySignature(t *testing.T) {
	body := []byte(`{"meta":{"event_name":"order_created"}}`)
	secret := "whsec_test"

	sig := Sign(body, secret)
	assert.True(t, VerifySignature(body, sig, secret))

	t.Run("flipped body byte fails", func(t *testing.T) {
		tampered := append([]byte(nil), body...)
		tampered[0] ^= 0x01
		assert.False(t, VerifySignature(tampered, sig, secret))
	})

	t.Run("wrong secret fails", func(t *testing.T) {
		assert.False(t, VerifySignature(body, sig, "whsec_other"))
	})

	t.Run("empty signature fails", func(t *testing.T) {
		assert.False(t, VerifySignature(body, "", secret))
	})

	t.Run("empty secret fails", func(t *testing.T) {
		assert.False(t, VerifySignature(body, sig, ""))
	})
}

func TestParseEvent(t *testing.T) {
	t.Run("order_created", func(t *testing.T) {
		body := []byte(`{
			"meta": {"event_name": "order_created", "custom_data": {"user_id": "8c2b2e1a-1111-4222-8333-444455556666"}},
			"data": {
				"id": "1843210",
				"type": "orders",
				"attributes": {
					"user_email": "buyer@example.com",
					"status": "paid",
					"first_order_item": {"variant_id": 601002, "variant_name": "Creator Pack"}
				}
			}
		}`)

		evt, err := ParseEvent(body)
		assert.NoError(t, err)
		assert.Equal(t, EventOrderCreated, evt.EventName())
		assert.Equal(t, 601002, evt.VariantID())
		assert.Equal(t, "order_created:orders:1843210", evt.DedupeKey())
		assert.Equal(t, "8c2b2e1a-1111-4222-8333-444455556666", evt.Meta.CustomData.UserID)
		assert.Equal(t, "buyer@example.com", evt.Data.Attributes.UserEmail)
	})

	t.Run("subscription payment carries variant at top level", func(t *testing.T) {
		body := []byte(`{
			"meta": {"event_name": "subscription_payment_success"},
			"data": {
				"id": "99001",
				"type": "subscription-invoices",
				"attributes": {"user_email": "sub@example.com", "variant_id": 601011}
			}
		}`)

		evt, err := ParseEvent(body)
		assert.NoError(t, err)
		assert.Equal(t, EventSubscriptionPaymentSuccess, evt.EventName())
		assert.Equal(t, 601011, evt.VariantID())
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := ParseEvent([]byte(`{not json`))
		assert.Error(t, err)
	})

	t.Run("missing event name", func(t *testing.T) {
		_, err := ParseEvent([]byte(`{"meta":{},"data":{}}`))
		assert.Error(t, err)
	})
}

func TestPlanForVariant(t *testing.T) {
	plan, ok := PlanForVariant(601001)
	assert.True(t, ok)
	assert.Equal(t, "Starter Pack", plan.Name)
	assert.Equal(t, 100, plan.Credits)

	_, ok = PlanForVariant(999999)
	assert.False(t, ok)
}

func TestPlansSorted(t *testing.T) {
	all := Plans()
	assert.NotEmpty(t, all)
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].VariantID, all[i].VariantID)
	}
}
