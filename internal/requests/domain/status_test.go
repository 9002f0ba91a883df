package domain

import "testing"

func TestRequestStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to RequestStatus
		ok       bool
	}{
		{RequestOpen, RequestMatched, true},
		{RequestOpen, RequestCancelled, true},
		{RequestOpen, RequestPendingContact, false},
		{RequestOpen, RequestAccepted, false},
		{RequestMatched, RequestPendingContact, true},
		{RequestMatched, RequestCancelled, true},
		{RequestMatched, RequestOpen, false},
		{RequestPendingContact, RequestAccepted, true},
		{RequestPendingContact, RequestRejectedByProfessional, true},
		{RequestPendingContact, RequestCancelled, true},
		{RequestPendingContact, RequestMatched, false},
		{RequestAccepted, RequestCompleted, true},
		{RequestAccepted, RequestCancelled, false},
		{RequestCompleted, RequestOpen, false},
		{RequestCancelled, RequestMatched, false},
		{RequestRejectedByProfessional, RequestPendingContact, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.ok {
			t.Errorf("%s -> %s: got %v, want %v", tc.from, tc.to, got, tc.ok)
		}
	}
}

func TestRequestStatusTerminal(t *testing.T) {
	terminal := []RequestStatus{RequestRejectedByProfessional, RequestCompleted, RequestCancelled}
	for _, s := range terminal {
		if !s.IsTerminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
	active := []RequestStatus{RequestOpen, RequestMatched, RequestPendingContact, RequestAccepted}
	for _, s := range active {
		if s.IsTerminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}

func TestAppointmentStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to AppointmentStatus
		ok       bool
	}{
		{AppointmentRequested, AppointmentAcceptedByProfessional, true},
		{AppointmentRequested, AppointmentConfirmed, false},
		{AppointmentRequested, AppointmentCancelledByClient, true},
		{AppointmentRequested, AppointmentCancelledByProfessional, true},
		{AppointmentAcceptedByProfessional, AppointmentConfirmed, true},
		{AppointmentAcceptedByProfessional, AppointmentCompleted, false},
		{AppointmentConfirmed, AppointmentCompleted, true},
		{AppointmentConfirmed, AppointmentCancelledByClient, true},
		{AppointmentCompleted, AppointmentCancelledByClient, false},
		{AppointmentCancelledByClient, AppointmentRequested, false},
		{AppointmentCancelledByProfessional, AppointmentConfirmed, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.ok {
			t.Errorf("%s -> %s: got %v, want %v", tc.from, tc.to, got, tc.ok)
		}
	}
}
