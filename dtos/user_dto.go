// Copyright (C) 2026 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package dtos

import "github.com/google/uuid"

type UserDTO struct {
	ID          uuid.UUID `json:"id"`
	UserName    string    `json:"userName"`
	DisplayName string    `json:"displayName"`
}

type LoginForm struct {
	UserName   string `form:"user_name" validate:"required"`
	Password   string `form:"password" validate:"required"`
	ForwardURL string `form:"forward_url"`
	// Format "json" forces a JSON response even if a forward_url is given.
	Format string `form:"tg_format"`
}

type LoginResponse struct {
	User       UserDTO `json:"user"`
	ForwardURL string  `json:"forwardUrl,omitempty"`
}

type UserCreateRequest struct {
	UserName    string `validate:"required,max=255"`
	DisplayName string `validate:"max=255"`
	Password    string `validate:"required,min=4"`
}
