package repository

import (
	"context"
	"fmt"

	"hms/infras/otel"
	"hms/infras/upstream"
	"hms/internal/domains/billing/model"
	"hms/shared/constant"
)

type roomsImpl struct {
	client *upstream.Client
	otel   otel.Otel
}

func NewRooms(client *upstream.Client, ot otel.Otel) Rooms {
	return &roomsImpl{
		client: client,
		otel:   ot,
	}
}

func (r *roomsImpl) GetByID(ctx context.Context, id int64) (res model.Room, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".Rooms.GetByID")
	defer scope.End()
	defer scope.TraceIfError(err)

	raw, err := r.client.Get(ctx, "room",
		fmt.Sprintf("/api/rooms/%d", id),
		fmt.Sprintf("/rooms/%d", id),
	)
	if err != nil {
		return res, err
	}

	return decodeObject[model.Room]("room", raw)
}

func (r *roomsImpl) GetTypeByID(ctx context.Context, id int64) (res model.RoomType, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".Rooms.GetTypeByID")
	defer scope.End()
	defer scope.TraceIfError(err)

	raw, err := r.client.Get(ctx, "room type",
		fmt.Sprintf("/api/room-types/%d", id),
		fmt.Sprintf("/room-types/%d", id),
	)
	if err != nil {
		return res, err
	}

	return decodeObject[model.RoomType]("room type", raw)
}
