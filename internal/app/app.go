package app

import (
	"time"

	"parcel-service/internal/handlers/kafka-consumer/payment_succeeded"
	"parcel-service/internal/handlers/rest/parcel_assign_rider_patch"
	"parcel-service/internal/handlers/rest/parcel_cashout_patch"
	"parcel-service/internal/handlers/rest/parcel_delete"
	"parcel-service/internal/handlers/rest/parcel_events_get"
	"parcel-service/internal/handlers/rest/parcel_get"
	"parcel-service/internal/handlers/rest/parcel_post"
	"parcel-service/internal/handlers/rest/parcel_status_patch"
	"parcel-service/internal/handlers/rest/parcels_assignable_get"
	"parcel-service/internal/handlers/rest/parcels_get"
	"parcel-service/internal/handlers/rest/payment_intent_post"
	"parcel-service/internal/handlers/rest/payment_post"
	"parcel-service/internal/handlers/rest/payments_get"
	"parcel-service/internal/handlers/rest/rider_delete"
	"parcel-service/internal/handlers/rest/rider_post"
	"parcel-service/internal/handlers/rest/rider_status_patch"
	"parcel-service/internal/handlers/rest/rider_tasks_get"
	"parcel-service/internal/handlers/rest/riders_get"
	"parcel-service/internal/handlers/rest/user_admin_patch"
	"parcel-service/internal/handlers/rest/user_post"
	"parcel-service/internal/handlers/rest/user_role_get"
	"parcel-service/internal/handlers/rest/users_search_get"
	authzService "parcel-service/internal/service/authz"
	"parcel-service/pkg/background"
)

type ReconcileInterval time.Duration

type Application struct {
	ServiceUser       ServiceUser
	ServiceParcel     ServiceParcel
	ServiceRider      ServiceRider
	ServicePayment    ServicePayment
	Gate              *authzService.Gate
	BackgroundWorkers *background.Worker
}

type ServiceUser interface {
	user_post.Service
	users_search_get.Service
	user_role_get.Service
	user_admin_patch.Service
}

type ServiceParcel interface {
	parcels_get.Service
	parcels_assignable_get.Service
	parcel_get.Service
	parcel_events_get.Service
	parcel_post.Service
	parcel_status_patch.Service
	parcel_cashout_patch.Service
	parcel_assign_rider_patch.Service
	parcel_delete.Service
	payment_post.Service
}

type ServiceRider interface {
	rider_post.Service
	riders_get.Service
	rider_status_patch.Service
	rider_delete.Service
	rider_tasks_get.Service
}

type ServicePayment interface {
	payments_get.Service
	payment_intent_post.Service
}

type KafkaWorkerApp struct {
	ParcelService payment_succeeded.Service
}

