package lead

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validLead() Lead {
	return Lead{
		Email:       "buyer@example.com",
		Phone:       "9876543210",
		Quantity:    2,
		Unit:        "site",
		ServiceName: "Land Surveyors",
		TriggerType: TriggerAuto,
	}
}

func TestLead_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Lead)
		wantErr error
	}{
		{
			name:   "valid lead",
			mutate: func(l *Lead) {},
		},
		{
			name:   "phone only is enough",
			mutate: func(l *Lead) { l.Email = "" },
		},
		{
			name:   "email only is enough",
			mutate: func(l *Lead) { l.Phone = "" },
		},
		{
			name:   "empty trigger allowed",
			mutate: func(l *Lead) { l.TriggerType = "" },
		},
		{
			name:   "manual trigger allowed",
			mutate: func(l *Lead) { l.TriggerType = TriggerManual },
		},
		{
			name:    "no contact at all",
			mutate:  func(l *Lead) { l.Email = ""; l.Phone = "  " },
			wantErr: ErrMissingContact,
		},
		{
			name:    "malformed email",
			mutate:  func(l *Lead) { l.Email = "not-an-email" },
			wantErr: ErrInvalidEmail,
		},
		{
			name:    "missing service",
			mutate:  func(l *Lead) { l.ServiceName = " " },
			wantErr: ErrMissingService,
		},
		{
			name:    "negative quantity",
			mutate:  func(l *Lead) { l.Quantity = -1 },
			wantErr: ErrBadQuantity,
		},
		{
			name:    "unknown trigger",
			mutate:  func(l *Lead) { l.TriggerType = "popup" },
			wantErr: ErrBadTrigger,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := validLead()
			tt.mutate(&l)
			err := l.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
