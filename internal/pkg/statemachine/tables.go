package statemachine

import "parcel-service/internal/entities"

var Delivery = NewTable("delivery",
	Transition[entities.DeliveryStatus]{From: entities.DeliveryPending, To: entities.DeliveryAssigned},
	Transition[entities.DeliveryStatus]{From: entities.DeliveryAssigned, To: entities.DeliveryInTransit},
	Transition[entities.DeliveryStatus]{From: entities.DeliveryInTransit, To: entities.DeliveryDelivered},
	Transition[entities.DeliveryStatus]{From: entities.DeliveryInTransit, To: entities.DeliveryServiceCenterDelivered},
)

var Payment = NewTable("payment",
	Transition[entities.PaymentStatus]{From: entities.PaymentUnpaid, To: entities.PaymentPaid},
)

var Cashout = NewTable("cashout",
	Transition[entities.CashoutStatus]{From: entities.CashoutNone, To: entities.CashoutCashedOut},
)

var Rider = NewTable("rider",
	Transition[entities.RiderStatus]{From: entities.RiderPending, To: entities.RiderActive},
	Transition[entities.RiderStatus]{From: entities.RiderInactive, To: entities.RiderActive},
	Transition[entities.RiderStatus]{From: entities.RiderActive, To: entities.RiderInactive},
)
